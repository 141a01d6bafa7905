package artwork

import (
	"context"
	"fmt"
	"sync"

	"github.com/handiism/albumgrid/internal/model"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/semaphore"
)

// CoverSource fetches raw cover art.
type CoverSource interface {
	FetchCover(ctx context.Context, a *model.Album, size int) ([]byte, error)
}

// Request asks for the painted cover of one tile.
type Request struct {
	// Key is the tile key the result belongs to.
	Key   string
	Album *model.Album
	Cols  int
	Rows  int
}

func (r Request) cacheKey() string {
	return fmt.Sprintf("%s@%dx%d", r.Album.CoverArtID, r.Cols, r.Rows)
}

// Result is a painted cover. Art is empty when the album has no cover.
type Result struct {
	Request
	Art string
	Err error
}

type inflight struct {
	id     uint64
	cancel context.CancelFunc
}

// Fetcher downloads and paints covers with bounded concurrency and an LRU
// of painted results. In-flight requests can be canceled by tile key.
type Fetcher struct {
	src    CoverSource
	images *ImageService
	size   int

	sem   *semaphore.Weighted
	cache *lru.Cache[string, string]

	mu       sync.Mutex
	nextID   uint64
	inflight map[string]inflight
}

// NewFetcher creates a Fetcher requesting covers at size pixels.
func NewFetcher(src CoverSource, size, maxConcurrent, cacheSize int) (*Fetcher, error) {
	cache, err := lru.New[string, string](max(cacheSize, 1))
	if err != nil {
		return nil, err
	}
	return &Fetcher{
		src:      src,
		images:   NewImageService(),
		size:     size,
		sem:      semaphore.NewWeighted(int64(max(maxConcurrent, 1))),
		cache:    cache,
		inflight: make(map[string]inflight),
	}, nil
}

// Cached returns the painted cover for req if it is in the cache.
func (f *Fetcher) Cached(req Request) (string, bool) {
	if req.Album == nil || !req.Album.HasCoverArt() {
		return "", false
	}
	return f.cache.Get(req.cacheKey())
}

// Fetch downloads, paints and caches the cover for req. It blocks while the
// concurrency limit is reached.
func (f *Fetcher) Fetch(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	if req.Album == nil || !req.Album.HasCoverArt() {
		return res
	}
	if art, ok := f.cache.Get(req.cacheKey()); ok {
		res.Art = art
		return res
	}

	ctx, cancel := context.WithCancel(ctx)
	id := f.track(req.Key, cancel)
	defer f.untrack(req.Key, id)
	defer cancel()

	if err := f.sem.Acquire(ctx, 1); err != nil {
		res.Err = err
		return res
	}
	defer f.sem.Release(1)

	data, err := f.src.FetchCover(ctx, req.Album, f.size)
	if err != nil {
		res.Err = fmt.Errorf("fetch cover %s: %w", req.Album.ID, err)
		return res
	}
	if len(data) == 0 {
		return res
	}
	img, err := f.images.Decode(data)
	if err != nil {
		res.Err = err
		return res
	}

	res.Art = f.images.Blocks(img, req.Cols, req.Rows)
	f.cache.Add(req.cacheKey(), res.Art)
	return res
}

func (f *Fetcher) track(key string, cancel context.CancelFunc) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	if prev, ok := f.inflight[key]; ok {
		prev.cancel()
	}
	f.inflight[key] = inflight{id: f.nextID, cancel: cancel}
	return f.nextID
}

func (f *Fetcher) untrack(key string, id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.inflight[key]; ok && cur.id == id {
		delete(f.inflight, key)
	}
}

// Cancel aborts the in-flight request for key, if any.
func (f *Fetcher) Cancel(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.inflight[key]; ok {
		cur.cancel()
		delete(f.inflight, key)
	}
}

// Retain cancels every in-flight request whose key is not in keys and
// returns how many were canceled.
func (f *Fetcher) Retain(keys []string) int {
	keep := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keep[k] = struct{}{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for key, cur := range f.inflight {
		if _, ok := keep[key]; !ok {
			cur.cancel()
			delete(f.inflight, key)
			n++
		}
	}
	return n
}

// Pending returns the number of in-flight requests.
func (f *Fetcher) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inflight)
}

// Purge empties the cache.
func (f *Fetcher) Purge() {
	f.cache.Purge()
}
