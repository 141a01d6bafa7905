package window

import (
	"context"
	"errors"
	"iter"
	"math"

	"github.com/handiism/albumgrid/internal/model"
	"golang.org/x/sync/errgroup"
)

// Entry is one cell yielded by the window.
type Entry struct {
	Record    *model.Album
	IsLoaded  bool
	ItemIndex int
}

// Page is one slice of records returned by a Loader.
//
// A loader returns as many records as the request's limit unless the list
// ends inside the page, in which case it sets Done.
type Page struct {
	Records []*model.Album

	// Done is true when no records exist past this page.
	Done bool
}

// Loader fetches records by position.
type Loader interface {
	LoadRange(ctx context.Context, offset, limit int) (Page, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, offset, limit int) (Page, error)

// LoadRange calls f.
func (f LoaderFunc) LoadRange(ctx context.Context, offset, limit int) (Page, error) {
	return f(ctx, offset, limit)
}

// Request identifies one page load. Index is the page number.
type Request struct {
	Index      int
	Offset     int
	Limit      int
	Generation uint64
}

// Result is the outcome of a Request.
type Result struct {
	Request
	Page Page
	Err  error
}

type pageState int

const (
	pageIdle pageState = iota
	pagePending
	pageLoaded
	pageFailed
)

// Options configures a Window.
type Options struct {
	// PageSize is the number of records fetched per request.
	PageSize int

	// Overscan is the number of extra rows kept above and below the viewport.
	// Zero keeps none.
	Overscan int
}

// DefaultOptions returns 50-record pages with one row of overscan.
func DefaultOptions() Options {
	return Options{PageSize: 50, Overscan: 1}
}

// Window tracks which records of an incrementally loaded list are resident
// and which part of the list is visible.
//
// Window is not safe for concurrent use. All methods except Load must be
// called from the UI goroutine; Load only reads the request it is given.
type Window struct {
	opts Options

	columns    int
	itemHeight float64
	viewport   float64
	scrollTop  float64

	records map[int]*model.Album
	pages   map[int]pageState
	known   int
	total   int

	generation uint64
}

// New creates an empty Window.
func New(opts Options) *Window {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultOptions().PageSize
	}
	if opts.Overscan < 0 {
		opts.Overscan = 0
	}
	return &Window{
		opts:       opts,
		columns:    1,
		itemHeight: 1,
		records:    make(map[int]*model.Album),
		pages:      make(map[int]pageState),
		total:      -1,
	}
}

// Layout updates the grid shape the window positions items in.
func (w *Window) Layout(columns int, itemHeight float64) {
	if columns < 1 {
		columns = 1
	}
	if itemHeight <= 0 || math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) {
		itemHeight = 1
	}
	w.columns = columns
	w.itemHeight = itemHeight
	w.clamp(w.scrollTop)
}

// SetViewport sets the visible height in the same unit as the item height.
func (w *Window) SetViewport(height float64) {
	if height < 0 || math.IsNaN(height) {
		height = 0
	}
	w.viewport = height
	w.clamp(w.scrollTop)
}

// Reset discards every record and bumps the generation, so results of
// requests issued before the reset are ignored.
func (w *Window) Reset() {
	w.generation++
	clear(w.records)
	clear(w.pages)
	w.known = 0
	w.total = -1
	w.scrollTop = 0
}

// Generation returns the current generation.
func (w *Window) Generation() uint64 {
	return w.generation
}

// Extent returns the number of cells the window currently spans.
//
// While the end of the list is unknown the extent reaches one page past the
// last known record, so the next page shows up as placeholders.
func (w *Window) Extent() int {
	if w.total >= 0 {
		return w.total
	}
	return w.known + w.opts.PageSize
}

// Total returns the list length, or -1 while it is unknown.
func (w *Window) Total() int {
	return w.total
}

// Loaded returns the number of resident records.
func (w *Window) Loaded() int {
	return len(w.records)
}

// Rows returns the number of grid rows spanned by Extent.
func (w *Window) Rows() int {
	return (w.Extent() + w.columns - 1) / w.columns
}

// ScrollTop returns the scroll offset.
func (w *Window) ScrollTop() float64 {
	return w.scrollTop
}

// ScrollTo moves the viewport, clamped to the scrollable range. Every scroll
// makes failed pages eligible for another request.
func (w *Window) ScrollTo(top float64) {
	w.retryFailed()
	w.clamp(top)
}

func (w *Window) clamp(top float64) {
	maxTop := float64(w.Rows())*w.itemHeight - w.viewport
	if top > maxTop {
		top = maxTop
	}
	if top < 0 || math.IsNaN(top) {
		top = 0
	}
	w.scrollTop = top
}

// ScrollRows scrolls by n grid rows.
func (w *Window) ScrollRows(n int) {
	w.ScrollTo(w.scrollTop + float64(n)*w.itemHeight)
}

// ScrollToIndex scrolls the minimum distance that makes item index visible.
func (w *Window) ScrollToIndex(index int) {
	if index < 0 {
		return
	}
	row := float64(index / w.columns)
	top := row * w.itemHeight
	bottom := top + w.itemHeight
	switch {
	case top < w.scrollTop:
		w.ScrollTo(top)
	case bottom > w.scrollTop+w.viewport:
		w.ScrollTo(bottom - w.viewport)
	}
}

// VisibleRange returns the half-open item index range [first, last) that is
// on screen, including overscan rows.
func (w *Window) VisibleRange() (first, last int) {
	firstRow := int(math.Floor(w.scrollTop/w.itemHeight)) - w.opts.Overscan
	lastRow := int(math.Ceil((w.scrollTop+w.viewport)/w.itemHeight)) + w.opts.Overscan
	if firstRow < 0 {
		firstRow = 0
	}
	if lastRow <= firstRow {
		lastRow = firstRow + 1
	}
	first = firstRow * w.columns
	last = lastRow * w.columns
	if extent := w.Extent(); last > extent {
		last = extent
	}
	if first > last {
		first = last
	}
	return first, last
}

// Entries yields the visible cells in index order. The sequence reads the
// window's state when iterated, so it can be ranged over again after the
// window changed.
func (w *Window) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		first, last := w.VisibleRange()
		for i := first; i < last; i++ {
			rec, ok := w.records[i]
			if !yield(Entry{Record: rec, IsLoaded: ok, ItemIndex: i}) {
				return
			}
		}
	}
}

// Render lays the window out for columns and itemHeight and applies tpl to
// every visible entry.
func Render[T any](w *Window, columns int, itemHeight float64, tpl func(Entry) T) []T {
	w.Layout(columns, itemHeight)
	var out []T
	for e := range w.Entries() {
		out = append(out, tpl(e))
	}
	return out
}

func (w *Window) pageRange(page int) (first, last int) {
	return page * w.opts.PageSize, (page + 1) * w.opts.PageSize
}

func (w *Window) pageVisible(page int) bool {
	first, last := w.VisibleRange()
	pf, pl := w.pageRange(page)
	return pf < last && first < pl
}

// Pending returns requests for every visible page that is not resident or
// in flight, and marks them in flight.
func (w *Window) Pending() []Request {
	first, last := w.VisibleRange()
	if first >= last {
		return nil
	}
	var reqs []Request
	for page := first / w.opts.PageSize; page <= (last-1)/w.opts.PageSize; page++ {
		if st := w.pages[page]; st != pageIdle {
			continue
		}
		offset, _ := w.pageRange(page)
		if w.total >= 0 && offset >= w.total {
			break
		}
		w.pages[page] = pagePending
		reqs = append(reqs, Request{
			Index:      page,
			Offset:     offset,
			Limit:      w.opts.PageSize,
			Generation: w.generation,
		})
	}
	return reqs
}

// Load runs a request against loader. It is safe to call from any goroutine.
func Load(ctx context.Context, loader Loader, req Request) Result {
	page, err := loader.LoadRange(ctx, req.Offset, req.Limit)
	return Result{Request: req, Page: page, Err: err}
}

// ErrStale is returned by Apply for results the window no longer wants.
var ErrStale = errors.New("window: stale page result")

// Apply stores a page result.
//
// Results from an older generation, or for pages that scrolled out of view
// while in flight, are discarded and return ErrStale; discarded pages are
// requested again once they become visible. A failed load returns its error
// and is retried after the next scroll.
func (w *Window) Apply(res Result) error {
	if res.Generation != w.generation || w.pages[res.Index] != pagePending {
		return ErrStale
	}
	if !w.pageVisible(res.Index) {
		delete(w.pages, res.Index)
		return ErrStale
	}
	if res.Err != nil {
		w.pages[res.Index] = pageFailed
		return res.Err
	}

	w.pages[res.Index] = pageLoaded
	recs := res.Page.Records
	if len(recs) > res.Limit {
		recs = recs[:res.Limit]
	}
	for i, rec := range recs {
		if rec == nil {
			continue
		}
		w.records[res.Offset+i] = rec
	}
	if end := res.Offset + len(recs); end > w.known {
		w.known = end
	}
	if res.Page.Done || len(recs) == 0 {
		w.total = res.Offset + len(recs)
		if w.known > w.total {
			w.total = w.known
		}
	}
	w.clamp(w.scrollTop)
	return nil
}

func (w *Window) retryFailed() {
	for page, st := range w.pages {
		if st == pageFailed {
			delete(w.pages, page)
		}
	}
}

// Preload loads every pending visible page with at most limit concurrent
// requests and applies the results in page order.
func (w *Window) Preload(ctx context.Context, loader Loader, limit int) error {
	reqs := w.Pending()
	results := make([]Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = Load(ctx, loader, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errs []error
	for _, res := range results {
		if err := w.Apply(res); err != nil && !errors.Is(err, ErrStale) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
