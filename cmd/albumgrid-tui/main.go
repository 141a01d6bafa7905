package main

import (
	"cmp"
	"flag"
	"fmt"
	"os"

	"github.com/handiism/albumgrid/internal/config"
	"github.com/handiism/albumgrid/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (JSON or TOML); watched for changes")
	flag.Parse()

	path := cmp.Or(*configFlag, config.DefaultPath())
	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
