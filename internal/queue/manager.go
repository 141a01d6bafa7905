package queue

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/handiism/albumgrid/internal/audio"
	"github.com/handiism/albumgrid/internal/dnd"
	ioutils "github.com/handiism/albumgrid/internal/io"
	"github.com/handiism/albumgrid/internal/model"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a queue status update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// TrackSource resolves the tracks of an album.
type TrackSource interface {
	Tracks(ctx context.Context, a *model.Album) ([]*model.Track, error)
}

// Options configures a Manager.
type Options struct {
	MaxConcurrent  int
	MaxRetries     int
	RetryCooldown  float64 // seconds
	RetryExponent  float64
	PlaylistFormat audio.PlaylistFormat
	M3UExtended    bool
}

// DefaultOptions returns four concurrent resolves, three tries with a
// 0.2 s cooldown growing by a factor of 4, and extended M3U export.
func DefaultOptions() Options {
	return Options{
		MaxConcurrent:  4,
		MaxRetries:     3,
		RetryCooldown:  0.2,
		RetryExponent:  4.0,
		PlaylistFormat: audio.FormatM3U,
		M3UExtended:    true,
	}
}

// Manager holds the play queue: the albums dropped onto it or played from
// the grid, in order.
type Manager struct {
	opts     Options
	source   TrackSource
	playlist *audio.PlaylistCreator

	albums []*model.Album

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new queue Manager.
func NewManager(source TrackSource, opts Options, onProgress func(ProgressEvent)) *Manager {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Manager{
		opts:       opts,
		source:     source,
		playlist:   audio.NewPlaylistCreator(opts.PlaylistFormat, opts.M3UExtended),
		onProgress: onProgress,
	}
}

// Add appends albums to the queue and returns the new queue length.
func (m *Manager) Add(albums ...*model.Album) int {
	m.mu.Lock()
	for _, a := range albums {
		if a != nil {
			m.albums = append(m.albums, a)
		}
	}
	n := len(m.albums)
	m.mu.Unlock()

	for _, a := range albums {
		if a != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Queued: %s - %s", a.Artist, a.Name), Level: LevelInfo})
		}
	}
	return n
}

// Play replaces the queue with a single album.
func (m *Manager) Play(a *model.Album) {
	if a == nil {
		return
	}
	m.mu.Lock()
	m.albums = []*model.Album{a}
	m.mu.Unlock()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Playing: %s - %s", a.Artist, a.Name), Level: LevelSuccess})
}

// Clear empties the queue.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.albums = nil
	m.mu.Unlock()
}

// Albums returns a copy of the queued albums.
func (m *Manager) Albums() []*model.Album {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.albums)
}

// Len returns the number of queued albums.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.albums)
}

// Target returns a drop target accepting album drags. Dropped ids are
// resolved with lookup; unknown ids are reported and skipped.
func (m *Manager) Target(lookup func(id string) *model.Album) dnd.Target {
	return dnd.Target{
		Accepts: []dnd.Kind{dnd.KindAlbum},
		OnDrop: func(it dnd.Item) {
			var albums []*model.Album
			for _, id := range it.Payload.AlbumIDs {
				if a := lookup(id); a != nil {
					albums = append(albums, a)
				} else {
					m.progress(ProgressEvent{Message: fmt.Sprintf("Unknown album %s", id), Level: LevelWarning})
				}
			}
			m.Add(albums...)
		},
	}
}

// Tracks resolves the tracks of every queued album, in queue order.
//
// Albums are resolved concurrently and retried with exponential cooldown.
// An album that still fails is reported and left out.
func (m *Manager) Tracks(ctx context.Context) ([]*model.Track, error) {
	albums := m.Albums()
	results := make([][]*model.Track, len(albums))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.MaxConcurrent)

	for i, album := range albums {
		g.Go(func() error {
			tracks, err := m.resolve(ctx, album)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error resolving %s: %v", album.Name, err), Level: LevelError})
				return nil
			}
			results[i] = tracks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*model.Track
	for _, tracks := range results {
		all = append(all, tracks...)
	}
	return all, nil
}

func (m *Manager) resolve(ctx context.Context, album *model.Album) ([]*model.Track, error) {
	var (
		tracks []*model.Track
		err    error
	)
	for tries := 0; tries < m.opts.MaxRetries; tries++ {
		tracks, err = m.source.Tracks(ctx, album)
		if err == nil || ctx.Err() != nil {
			break
		}
		if tries+1 < m.opts.MaxRetries {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s", tries+1, m.opts.MaxRetries, album.Name), Level: LevelWarning})
			m.waitForRetry(ctx, tries)
		}
	}
	if err != nil {
		return nil, err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Resolved %d tracks of %s", len(tracks), album.Name), Level: LevelVerbose})
	return tracks, nil
}

// Export writes the queue as a playlist named name into dir and returns
// the file path.
func (m *Manager) Export(ctx context.Context, dir, name string) (string, error) {
	tracks, err := m.Tracks(ctx)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("export %s: queue has no local tracks", name)
	}

	path := filepath.Join(dir, ioutils.SanitizeFileName(name)+m.playlist.Format().Extension())
	content := m.playlist.CreatePlaylist(name, tracks, dir)
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		return "", fmt.Errorf("export %s: %w", name, err)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Exported %d tracks to %s", len(tracks), path), Level: LevelSuccess})
	return path, nil
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.opts.RetryCooldown * math.Pow(m.opts.RetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
