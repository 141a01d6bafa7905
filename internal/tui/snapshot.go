package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/albumgrid/internal/artwork"
	"github.com/handiism/albumgrid/internal/config"
	"github.com/handiism/albumgrid/internal/grid"
	"github.com/handiism/albumgrid/internal/model"
	"github.com/handiism/albumgrid/internal/source"
	"github.com/handiism/albumgrid/internal/window"
	"golang.org/x/sync/errgroup"
)

// SnapshotOptions configures Snapshot.
type SnapshotOptions struct {
	// Width and Rows are the terminal size in cells. Rows only limits
	// incremental frames; bulk frames show the whole list.
	Width int
	Rows  int

	Filter grid.Filter

	// Covers paints cover art instead of placeholder blocks.
	Covers bool
}

// Snapshot renders one frame of src as text, without a terminal program.
func Snapshot(ctx context.Context, s *config.Settings, src source.Source, opts SnapshotOptions) (string, error) {
	scr := MeasureScreen(s, opts.Width, opts.Rows)
	win := window.New(s.ToWindowOptions())
	c := grid.NewContainer(s.ToGridOptions(), src, nil, win)
	view := grid.View{
		Bounds:    scr.Bounds,
		Class:     scr.Class,
		RowHeight: float64(scr.Cells.TotalHeight) * s.CellHeightPx,
	}

	list := grid.ListContext{ListType: s.ListType, FilterValues: opts.Filter}
	incremental := c.Options().Mode == grid.Incremental
	if incremental {
		list.IDs, list.Data = []string{}, map[string]*model.Album{}
		c.Render(list, view)
		if err := preloadVisible(ctx, win, src.Loader(s.ListType, opts.Filter), s.MaxConcurrentCovers); err != nil {
			return "", fmt.Errorf("load albums: %w", err)
		}
	} else {
		albums, err := src.Albums(ctx, s.ListType, opts.Filter)
		if err != nil {
			return "", fmt.Errorf("load albums: %w", err)
		}
		list.IDs, list.Data = model.Index(albums)
	}

	f := c.Render(list, view)
	art := map[string]string{}
	if opts.Covers {
		var err error
		if art, err = paintCovers(ctx, s, src, f, scr); err != nil {
			return "", err
		}
	}

	p := Painter{
		Cells: scr.Cells,
		Art: func(key string) (string, bool) {
			a, ok := art[key]
			return a, ok
		},
	}
	out := p.Paint(f)
	if incremental {
		out = crop(out, 0, scr.Rows)
	}
	return lipgloss.NewStyle().PaddingLeft(s.MarginCells).Render(out), nil
}

// preloadVisible loads pages until every visible cell is resolved or the
// list ends. The window only asks for one page past the last known record,
// so a tall viewport may need several rounds.
func preloadVisible(ctx context.Context, win *window.Window, loader window.Loader, limit int) error {
	for {
		loaded := win.Loaded()
		if err := win.Preload(ctx, loader, limit); err != nil {
			return err
		}
		if win.Loaded() == loaded {
			return nil
		}
	}
}

// paintCovers fetches the covers of every content tile in f.
// Failed covers are logged and keep their placeholder.
func paintCovers(ctx context.Context, s *config.Settings, src source.Source, f grid.Frame, scr Screen) (map[string]string, error) {
	fetcher, err := artwork.NewFetcher(src, s.CoverArtSize, s.MaxConcurrentCovers, max(len(f.Tiles), 1))
	if err != nil {
		return nil, err
	}

	results := make([]artwork.Result, len(f.Tiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.MaxConcurrentCovers)
	for i, t := range f.Tiles {
		if t.Kind != grid.TileContent || t.Cover.Kind != grid.CoverImage {
			continue
		}
		g.Go(func() error {
			results[i] = fetcher.Fetch(gctx, artwork.Request{
				Key:   t.Key,
				Album: t.Record,
				Cols:  scr.Cells.Width,
				Rows:  scr.Cells.CoverRows,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	art := make(map[string]string, len(results))
	for _, res := range results {
		if res.Err != nil {
			log.Printf("Cover %s: %v", res.Key, res.Err)
			continue
		}
		if res.Art != "" {
			art[res.Key] = res.Art
		}
	}
	return art, nil
}
