package grid

import (
	"iter"
	"slices"

	"github.com/handiism/albumgrid/internal/dnd"
	"github.com/handiism/albumgrid/internal/layout"
	"github.com/handiism/albumgrid/internal/window"
)

// Options configures a Container.
type Options struct {
	Mode         DisplayMode
	BasePath     string
	CoverArtSize int
}

// DefaultOptions returns bulk mode over "/album" with 300 px covers.
func DefaultOptions() Options {
	return Options{
		Mode:         Bulk,
		BasePath:     "/album",
		CoverArtSize: DefaultCoverArtSize,
	}
}

// View is the host state a render pass depends on.
type View struct {
	// Bounds is the measured container size; unmeasured on the first pass.
	Bounds layout.Bounds

	// Class is the viewport's width class.
	Class layout.WidthClass

	// Hover is the key of the tile under the pointer (or keyboard focus).
	Hover string

	// RowHeight is the height the host paints a grid row with, in the unit
	// of Bounds. Zero means Geometry.ItemHeight(). Incremental windows
	// position and scroll rows with it.
	RowHeight float64
}

// Frame is the result of one render pass.
type Frame struct {
	// Hidden frames show a loading indicator and no tiles.
	Hidden bool

	Mode       DisplayMode
	Class      layout.WidthClass
	Columns    int
	Geometry   layout.Geometry
	ItemHeight float64

	// RowHeight is the row height the window was laid out with.
	RowHeight float64

	// Tiles are in list order.
	Tiles []Tile

	// Extent is the number of cells the whole list spans.
	Extent int
}

// Rows splits the tiles into grid rows.
func (f Frame) Rows() [][]Tile {
	if f.Columns < 1 {
		return nil
	}
	var rows [][]Tile
	for start := 0; start < len(f.Tiles); start += f.Columns {
		end := min(start+f.Columns, len(f.Tiles))
		rows = append(rows, f.Tiles[start:end])
	}
	return rows
}

// Position returns the slice position of the tile with key, or -1.
func (f Frame) Position(key string) int {
	for i, t := range f.Tiles {
		if t.Key == key {
			return i
		}
	}
	return -1
}

// Keys returns the tile keys in order.
func (f Frame) Keys() []string {
	keys := make([]string, len(f.Tiles))
	for i, t := range f.Tiles {
		keys[i] = t.Key
	}
	return keys
}

// strategy yields the cells of one render pass.
type strategy interface {
	entries(list ListContext, v View, columns int, rowHeight float64) iter.Seq[RenderEntry]
	extent(list ListContext) int
}

// Container lays out album tiles.
//
// Container is used from a single goroutine, the one driving the UI.
type Container struct {
	opts   Options
	covers CoverArtResolver
	drags  *dnd.Registry
	win    *window.Window
}

// NewContainer creates a Container.
//
// win may be nil when the container is only ever used in bulk mode.
func NewContainer(opts Options, covers CoverArtResolver, drags *dnd.Registry, win *window.Window) *Container {
	if opts.CoverArtSize <= 0 {
		opts.CoverArtSize = DefaultCoverArtSize
	}
	if drags == nil {
		drags = dnd.NewRegistry()
	}
	return &Container{opts: opts, covers: covers, drags: drags, win: win}
}

// Options returns the current options.
func (c *Container) Options() Options {
	return c.opts
}

// SetOptions replaces the options; the next Render uses them.
func (c *Container) SetOptions(opts Options) {
	if opts.CoverArtSize <= 0 {
		opts.CoverArtSize = DefaultCoverArtSize
	}
	c.opts = opts
}

// Drags returns the drag source registry the container binds into.
func (c *Container) Drags() *dnd.Registry {
	return c.drags
}

// Window returns the window used in incremental mode.
func (c *Container) Window() *window.Window {
	return c.win
}

func (c *Container) strategy() strategy {
	if c.opts.Mode == Incremental && c.win != nil {
		return incrementalStrategy{win: c.win}
	}
	return bulkStrategy{}
}

// Render runs one render pass.
func (c *Container) Render(list ListContext, v View) Frame {
	mode := c.opts.Mode
	if mode == Incremental && c.win == nil {
		mode = Bulk
	}

	c.drags.Begin()
	defer c.drags.Commit()

	if list.Hidden() {
		return Frame{Hidden: true, Mode: mode, Class: v.Class}
	}

	columns := layout.Columns(v.Class)
	geo := layout.Compute(v.Bounds, columns)
	itemHeight := geo.ItemHeight()
	coverHeight := geo.CoverHeightOr(itemHeight - layout.TextRowHeight)

	rowHeight := itemHeight
	if v.RowHeight > 0 {
		rowHeight = v.RowHeight
	}

	f := Frame{
		Mode:       mode,
		Class:      v.Class,
		Columns:    columns,
		Geometry:   geo,
		ItemHeight: itemHeight,
		RowHeight:  rowHeight,
	}

	strat := c.strategy()
	showArtist := !list.IsArtistView()
	desktop := layout.IsDesktop(v.Class)

	for e := range strat.entries(list, v, columns, rowHeight) {
		key := e.Key()
		f.Tiles = append(f.Tiles, c.renderTile(tileProps{
			mode:       mode,
			key:        key,
			index:      e.Index,
			record:     e.Record,
			isLoaded:   e.IsLoaded(),
			basePath:   c.opts.BasePath,
			showArtist: showArtist,
			hovered:    key == v.Hover,
			desktop:    desktop,
			height:     coverHeight,
		}))
	}
	f.Extent = strat.extent(list)
	return f
}

type bulkStrategy struct{}

func (bulkStrategy) entries(list ListContext, _ View, _ int, _ float64) iter.Seq[RenderEntry] {
	return func(yield func(RenderEntry) bool) {
		for i, id := range list.IDs {
			e := RenderEntry{Kind: EntryPending, Index: i, ID: id}
			if rec := list.Record(id); rec != nil {
				e = Loaded(rec, i)
				e.ID = id
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (bulkStrategy) extent(list ListContext) int {
	return len(list.IDs)
}

type incrementalStrategy struct {
	win *window.Window
}

func (s incrementalStrategy) entries(_ ListContext, v View, columns int, rowHeight float64) iter.Seq[RenderEntry] {
	if v.Bounds.Measured {
		s.win.SetViewport(v.Bounds.Height)
	}
	return slices.Values(window.Render(s.win, columns, rowHeight, renderEntryFor))
}

// renderEntryFor is the per-item template handed to the window.
func renderEntryFor(e window.Entry) RenderEntry {
	if e.IsLoaded && e.Record != nil {
		return Loaded(e.Record, e.ItemIndex)
	}
	return Pending(e.ItemIndex)
}

func (s incrementalStrategy) extent(ListContext) int {
	return s.win.Extent()
}
