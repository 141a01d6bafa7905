package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/albumgrid/internal/artwork"
	"github.com/handiism/albumgrid/internal/grid"
	"github.com/handiism/albumgrid/internal/model"
	"github.com/handiism/albumgrid/internal/queue"
	"github.com/handiism/albumgrid/internal/source"
	"github.com/handiism/albumgrid/internal/window"
)

// Message types
type (
	// ReloadMsg asks the model to fetch the list again.
	ReloadMsg struct{}

	// ListLoadedMsg carries a whole list for bulk mode.
	ListLoadedMsg struct {
		Generation uint64
		Albums     []*model.Album
		Err        error
	}

	// PageLoadedMsg carries one page for incremental mode.
	PageLoadedMsg struct {
		Result window.Result
	}

	// CoverMsg carries a painted cover.
	CoverMsg struct {
		Result artwork.Result
	}

	// ProgressMsg is sent when the play queue reports progress.
	ProgressMsg struct {
		Event queue.ProgressEvent
	}

	// ExportDoneMsg is sent when a queue export finished.
	ExportDoneMsg struct {
		Path string
		Err  error
	}
)

func reload() tea.Msg {
	return ReloadMsg{}
}

// loadList fetches the whole list in the background.
func loadList(ctx context.Context, src source.Source, listType string, filter grid.Filter, gen uint64) tea.Cmd {
	return func() tea.Msg {
		albums, err := src.Albums(ctx, listType, filter)
		return ListLoadedMsg{Generation: gen, Albums: albums, Err: err}
	}
}

// loadPage runs one window request in the background.
func loadPage(ctx context.Context, loader window.Loader, req window.Request) tea.Cmd {
	return func() tea.Msg {
		return PageLoadedMsg{Result: window.Load(ctx, loader, req)}
	}
}

// fetchCover paints one cover in the background.
func fetchCover(ctx context.Context, f *artwork.Fetcher, req artwork.Request) tea.Cmd {
	return func() tea.Msg {
		return CoverMsg{Result: f.Fetch(ctx, req)}
	}
}

// waitForEvent forwards the next queue event.
func waitForEvent(events <-chan queue.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// exportQueue writes the play queue as a playlist.
func exportQueue(ctx context.Context, q *queue.Manager, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := q.Export(ctx, dir, "queue")
		return ExportDoneMsg{Path: path, Err: err}
	}
}
