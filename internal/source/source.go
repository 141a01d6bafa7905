package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/handiism/albumgrid/internal/config"
	"github.com/handiism/albumgrid/internal/grid"
	"github.com/handiism/albumgrid/internal/http"
	"github.com/handiism/albumgrid/internal/library"
	"github.com/handiism/albumgrid/internal/model"
	"github.com/handiism/albumgrid/internal/subsonic"
	"github.com/handiism/albumgrid/internal/window"
)

// Source is a library backend the grid can display.
type Source interface {
	grid.CoverArtResolver

	// Name describes the source for status lines.
	Name() string

	// Albums returns the whole list for bulk mode.
	Albums(ctx context.Context, listType string, filter grid.Filter) ([]*model.Album, error)

	// Loader returns a loader for incremental mode.
	Loader(listType string, filter grid.Filter) window.Loader

	// FetchCover returns cover image bytes, or nil when the album has none.
	FetchCover(ctx context.Context, a *model.Album, size int) ([]byte, error)

	// Tracks resolves the tracks of an album.
	Tracks(ctx context.Context, a *model.Album) ([]*model.Track, error)
}

// Open creates the source selected by settings.
func Open(ctx context.Context, s *config.Settings) (Source, error) {
	switch s.Source {
	case config.SourceSubsonic:
		if s.ServerURL == "" {
			return nil, fmt.Errorf("subsonic source: server_url is not set")
		}
		c := subsonic.New(subsonic.Config{
			ServerURL: s.ServerURL,
			Username:  s.Username,
			Password:  s.Password,
		}, http.NewClient())
		return NewSubsonic(c), nil
	default:
		lib, err := library.Scan(ctx, s.LibraryPath)
		if err != nil {
			return nil, err
		}
		return NewLocal(lib), nil
	}
}

// Local serves a scanned directory.
type Local struct {
	lib *library.Library
}

// NewLocal wraps a scanned library.
func NewLocal(lib *library.Library) *Local {
	return &Local{lib: lib}
}

func (l *Local) Name() string { return "local:" + l.lib.Root() }

func (l *Local) Albums(_ context.Context, listType string, filter grid.Filter) ([]*model.Album, error) {
	return l.lib.Albums(listType, filter), nil
}

func (l *Local) Loader(listType string, filter grid.Filter) window.Loader {
	return l.lib.Loader(listType, filter)
}

func (l *Local) CoverArtURL(a *model.Album, size int) string {
	return l.lib.CoverArtURL(a, size)
}

func (l *Local) FetchCover(ctx context.Context, a *model.Album, size int) ([]byte, error) {
	return l.lib.FetchCover(ctx, a, size)
}

// Tracks returns the tracks found while scanning.
func (l *Local) Tracks(_ context.Context, a *model.Album) ([]*model.Track, error) {
	return a.Tracks, nil
}

// Subsonic serves a remote server.
type Subsonic struct {
	c *subsonic.Client
}

// NewSubsonic wraps a client.
func NewSubsonic(c *subsonic.Client) *Subsonic {
	return &Subsonic{c: c}
}

func (s *Subsonic) Name() string { return "subsonic" }

// Albums pages through getAlbumList2, or returns the artist's albums when
// the filter pins one.
func (s *Subsonic) Albums(ctx context.Context, listType string, filter grid.Filter) ([]*model.Album, error) {
	if filter.ArtistID != "" {
		return s.c.ArtistAlbums(ctx, filter.ArtistID)
	}
	return s.c.AllAlbums(ctx, listType)
}

// Loader pages getAlbumList2 directly. Artist lists are small and not
// paginated by the API, so they are fetched once and sliced.
func (s *Subsonic) Loader(listType string, filter grid.Filter) window.Loader {
	if filter.ArtistID == "" {
		return s.c.Loader(listType)
	}
	return SliceLoader(func(ctx context.Context) ([]*model.Album, error) {
		return s.c.ArtistAlbums(ctx, filter.ArtistID)
	})
}

func (s *Subsonic) CoverArtURL(a *model.Album, size int) string {
	return s.c.CoverArtURL(a, size)
}

func (s *Subsonic) FetchCover(ctx context.Context, a *model.Album, size int) ([]byte, error) {
	return s.c.FetchCover(ctx, a, size)
}

// Tracks fetches the album with its songs.
func (s *Subsonic) Tracks(ctx context.Context, a *model.Album) ([]*model.Track, error) {
	full, err := s.c.Album(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return full.Tracks, nil
}

// SliceLoader returns a loader that fetches the full list on first use and
// serves pages from it. A failed fetch is retried on the next call.
func SliceLoader(fetch func(ctx context.Context) ([]*model.Album, error)) window.Loader {
	var (
		mu     sync.Mutex
		albums []*model.Album
		loaded bool
	)
	return window.LoaderFunc(func(ctx context.Context, offset, limit int) (window.Page, error) {
		mu.Lock()
		defer mu.Unlock()
		if !loaded {
			list, err := fetch(ctx)
			if err != nil {
				return window.Page{}, err
			}
			albums, loaded = list, true
		}
		if offset >= len(albums) {
			return window.Page{Done: true}, nil
		}
		end := min(offset+limit, len(albums))
		return window.Page{Records: albums[offset:end], Done: end == len(albums)}, nil
	})
}
