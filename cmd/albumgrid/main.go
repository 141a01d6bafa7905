package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/albumgrid/internal/config"
	"github.com/handiism/albumgrid/internal/grid"
	"github.com/handiism/albumgrid/internal/source"
	"github.com/handiism/albumgrid/internal/tui"
	"golang.org/x/term"
)

func main() {
	// Command line flags
	var (
		configFlag   = flag.String("config", "", "Path to config file (JSON or TOML)")
		sourceFlag   = flag.String("source", "", "Library source: local or subsonic (overrides config)")
		libraryFlag  = flag.String("library", "", "Local library directory (overrides config)")
		serverFlag   = flag.String("server", "", "Subsonic server URL (overrides config)")
		userFlag     = flag.String("user", "", "Subsonic username")
		passwordFlag = flag.String("password", "", "Subsonic password")
		listFlag     = flag.String("list", "", "Album list type, e.g. newest or random")
		artistFlag   = flag.String("artist", "", "Only show albums of this artist ID")
		infiniteFlag = flag.Bool("infinite", false, "Use incremental loading")
		widthFlag    = flag.Int("width", 0, "Terminal width in cells (default: detected)")
		heightFlag   = flag.Int("height", 0, "Terminal height in cells (default: detected)")
		coversFlag   = flag.Bool("covers", false, "Paint cover art")
		verboseFlag  = flag.Bool("verbose", false, "Log to stderr")
	)

	flag.Parse()

	if *verboseFlag {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	path := *configFlag
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *sourceFlag != "" {
		settings.Source = *sourceFlag
	}
	if *libraryFlag != "" {
		settings.LibraryPath = *libraryFlag
	}
	if *serverFlag != "" {
		settings.ServerURL = *serverFlag
		if *sourceFlag == "" {
			settings.Source = config.SourceSubsonic
		}
	}
	if *userFlag != "" {
		settings.Username = *userFlag
	}
	if *passwordFlag != "" {
		settings.Password = *passwordFlag
	}
	if *listFlag != "" {
		if !grid.ValidListType(*listFlag) {
			fmt.Fprintf(os.Stderr, "Unknown list type %q, expected one of %v\n", *listFlag, grid.ListTypes())
			os.Exit(1)
		}
		settings.ListType = *listFlag
	}
	if *infiniteFlag {
		settings.InfiniteScroll = true
	}
	settings.Validate()

	width, height := terminalSize()
	if *widthFlag > 0 {
		width = *widthFlag
	}
	if *heightFlag > 0 {
		height = *heightFlag
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
		cancel()
	}()

	src, err := source.Open(ctx, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Opened %s", src.Name())

	out, err := tui.Snapshot(ctx, settings, src, tui.SnapshotOptions{
		Width:  width,
		Rows:   height,
		Filter: grid.Filter{ArtistID: *artistFlag},
		Covers: *coversFlag,
	})
	if err != nil {
		if ctx.Err() != nil {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

// terminalSize reports the size of stdout, or 120x40 when stdout is not a
// terminal.
func terminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 120, 40
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return 120, 40
	}
	return w, h
}
