package library

import (
	"cmp"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/handiism/albumgrid/internal/audio"
	"github.com/handiism/albumgrid/internal/grid"
	ioutils "github.com/handiism/albumgrid/internal/io"
	"github.com/handiism/albumgrid/internal/model"
	"github.com/handiism/albumgrid/internal/window"
)

// ErrNoAlbums is returned by Scan when the directory holds no tagged MP3s.
var ErrNoAlbums = errors.New("no albums found")

// CoverScheme prefixes the cover URLs handed out by a Library.
const CoverScheme = "cover://"

// folderCovers are the image names tried, in order, next to the tracks.
var folderCovers = []string{"cover.jpg", "cover.png", "folder.jpg", "folder.png", "front.jpg", "front.png"}

const unknownArtist = "Unknown Artist"

// Library is an in-memory album index built from a directory of MP3 files.
//
// Albums are grouped by album artist and album title. A Library is
// immutable after Scan and safe for concurrent use.
type Library struct {
	root   string
	reader *audio.TagReader

	albums []*model.Album
	byID   map[string]*model.Album

	// added is the newest file modification time per album.
	added map[string]time.Time

	// covers maps album ids to a folder image or a track with embedded art.
	covers map[string]string

	mu   sync.Mutex
	rand *rand.Rand
}

// Option configures Scan.
type Option func(*Library)

// WithRand sets the random source used for the random list type.
func WithRand(r *rand.Rand) Option {
	return func(l *Library) { l.rand = r }
}

// Scan walks root and indexes every MP3 file below it.
//
// Unreadable files are logged and skipped. Scan returns ErrNoAlbums when
// nothing could be indexed.
func Scan(ctx context.Context, root string, opts ...Option) (*Library, error) {
	l := &Library{
		root:   root,
		reader: audio.NewTagReader(),
		byID:   make(map[string]*model.Album),
		added:  make(map[string]time.Time),
		covers: make(map[string]string),
		rand:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	for _, opt := range opts {
		opt(l)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".mp3") {
			return nil
		}
		if err := l.addFile(path, d); err != nil {
			log.Printf("library: skipping %s: %v", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if len(l.albums) == 0 {
		return nil, fmt.Errorf("scan %s: %w", root, ErrNoAlbums)
	}

	for _, a := range l.albums {
		a.SortTracks()
		a.SongCount = len(a.Tracks)
		l.resolveCover(a)
	}
	return l, nil
}

func (l *Library) addFile(path string, d fs.DirEntry) error {
	tags, err := l.reader.ReadTags(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	artist := firstNonEmpty(tags.AlbumArtist, tags.Artist, unknownArtist)
	name := firstNonEmpty(tags.Album, filepath.Base(dir))
	id := hashID("al", strings.ToLower(artist), strings.ToLower(name))

	a, ok := l.byID[id]
	if !ok {
		a = &model.Album{
			ID:       id,
			Name:     name,
			ArtistID: hashID("ar", strings.ToLower(artist)),
			Artist:   artist,
			Path:     dir,
		}
		l.byID[id] = a
		l.albums = append(l.albums, a)
	}

	title := firstNonEmpty(tags.Title, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	a.Tracks = append(a.Tracks, &model.Track{
		Album:      a,
		Number:     tags.TrackNumber,
		DiscNumber: tags.DiscNumber,
		Title:      title,
		Artist:     tags.Artist,
		Year:       tags.Year,
		Duration:   tags.Duration,
		Path:       path,
	})

	if tags.Year > 0 {
		if a.MinYear == 0 || tags.Year < a.MinYear {
			a.MinYear = tags.Year
		}
		if tags.Year > a.MaxYear {
			a.MaxYear = tags.Year
		}
	}

	if info, err := d.Info(); err == nil && info.ModTime().After(l.added[id]) {
		l.added[id] = info.ModTime()
	}
	return nil
}

// resolveCover prefers a folder image, then embedded art of the first track
// that has some.
func (l *Library) resolveCover(a *model.Album) {
	if path, ok := ioutils.FindFile(a.Path, folderCovers...); ok {
		l.covers[a.ID] = path
		a.CoverArtID = a.ID
		return
	}
	for _, t := range a.Tracks {
		if _, ok, err := l.reader.ReadPicture(t.Path); err == nil && ok {
			l.covers[a.ID] = t.Path
			a.CoverArtID = a.ID
			return
		}
	}
}

func hashID(prefix string, parts ...string) string {
	sum := sha1.Sum([]byte(strings.Join(parts, "\x00")))
	return prefix + "-" + hex.EncodeToString(sum[:6])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Root returns the scanned directory.
func (l *Library) Root() string {
	return l.root
}

// Len returns the number of albums.
func (l *Library) Len() int {
	return len(l.albums)
}

// Album returns the album with id, or nil.
func (l *Library) Album(id string) *model.Album {
	return l.byID[id]
}

// Albums returns the albums matching filter, ordered by listType.
//
// Every call with ListTypeRandom returns a new order.
func (l *Library) Albums(listType string, filter grid.Filter) []*model.Album {
	albums := make([]*model.Album, 0, len(l.albums))
	for _, a := range l.albums {
		if filter.ArtistID != "" && a.ArtistID != filter.ArtistID {
			continue
		}
		albums = append(albums, a)
	}

	byName := func(a, b *model.Album) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(strings.ToLower(a.Artist), strings.ToLower(b.Artist)),
			cmp.Compare(a.ID, b.ID),
		)
	}

	switch listType {
	case grid.ListTypeAlphabeticalByArtist:
		slices.SortFunc(albums, func(a, b *model.Album) int {
			return cmp.Or(
				cmp.Compare(strings.ToLower(a.Artist), strings.ToLower(b.Artist)),
				cmp.Compare(a.MaxYear, b.MaxYear),
				byName(a, b),
			)
		})
	case grid.ListTypeNewest:
		slices.SortFunc(albums, func(a, b *model.Album) int {
			return cmp.Or(l.added[b.ID].Compare(l.added[a.ID]), byName(a, b))
		})
	case grid.ListTypeByYear:
		slices.SortFunc(albums, func(a, b *model.Album) int {
			return cmp.Or(cmp.Compare(a.MaxYear, b.MaxYear), byName(a, b))
		})
	case grid.ListTypeRandom:
		l.mu.Lock()
		l.rand.Shuffle(len(albums), func(i, j int) {
			albums[i], albums[j] = albums[j], albums[i]
		})
		l.mu.Unlock()
	default:
		slices.SortFunc(albums, byName)
	}
	return albums
}

// Loader returns a window loader over a snapshot of Albums(listType, filter).
// The order is fixed when Loader is called, so pages of a random list stay
// consistent with each other.
func (l *Library) Loader(listType string, filter grid.Filter) window.Loader {
	albums := l.Albums(listType, filter)
	return window.LoaderFunc(func(ctx context.Context, offset, limit int) (window.Page, error) {
		if err := ctx.Err(); err != nil {
			return window.Page{}, err
		}
		if offset >= len(albums) {
			return window.Page{Done: true}, nil
		}
		end := min(offset+limit, len(albums))
		return window.Page{Records: albums[offset:end], Done: end == len(albums)}, nil
	})
}

// CoverArtURL returns "cover://<id>" for albums with artwork, "" otherwise.
// The size is ignored; FetchCover returns the original image.
func (l *Library) CoverArtURL(a *model.Album, _ int) string {
	if a == nil || !a.HasCoverArt() {
		return ""
	}
	return CoverScheme + a.CoverArtID
}

// FetchCover returns the cover image bytes of an album, or nil when it has
// none.
func (l *Library) FetchCover(ctx context.Context, a *model.Album, _ int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	path, ok := l.covers[a.ID]
	if !ok {
		return nil, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		pic, ok, err := l.reader.ReadPicture(path)
		if err != nil || !ok {
			return nil, err
		}
		return pic.Data, nil
	}
	return os.ReadFile(path)
}
