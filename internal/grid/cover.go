package grid

import (
	"github.com/handiism/albumgrid/internal/dnd"
	"github.com/handiism/albumgrid/internal/model"
)

const (
	// PlaceholderColor fills covers and labels that are not resolved yet.
	PlaceholderColor = "#222"

	// DefaultCoverArtSize is the source resolution requested for covers.
	DefaultCoverArtSize = 300
)

// CoverArtResolver turns a record into the URL of its cover at size pixels.
type CoverArtResolver interface {
	CoverArtURL(a *model.Album, size int) string
}

// CoverArtFunc adapts a function to CoverArtResolver.
type CoverArtFunc func(a *model.Album, size int) string

// CoverArtURL calls f.
func (f CoverArtFunc) CoverArtURL(a *model.Album, size int) string {
	return f(a, size)
}

// CoverKind tags a Cover.
type CoverKind int

const (
	CoverPlaceholder CoverKind = iota
	CoverImage
)

// Cover is the artwork slot of a tile.
type Cover struct {
	Kind CoverKind

	// URL and Alt are only set for CoverImage.
	URL string
	Alt string

	// Height is the rendered height in pixels; covers are square.
	Height float64

	// Color fills a CoverPlaceholder.
	Color string

	// Drag is the drag source bound for this cover, if any.
	Drag *dnd.Item
}

// renderCover resolves the cover slot of one tile.
//
// Incremental covers never call the resolver until their record is loaded.
// Bulk covers always show the image and bind an album drag source under key.
func (c *Container) renderCover(mode DisplayMode, key string, rec *model.Album, isLoaded bool, height float64) Cover {
	if mode == Incremental {
		if !isLoaded || rec == nil {
			return Cover{Kind: CoverPlaceholder, Height: height, Color: PlaceholderColor}
		}
		return Cover{
			Kind:   CoverImage,
			URL:    c.covers.CoverArtURL(rec, c.opts.CoverArtSize),
			Alt:    rec.Name,
			Height: height,
		}
	}

	item := dnd.AlbumItem(rec.ID)
	c.drags.Bind(key, item)
	return Cover{
		Kind:   CoverImage,
		URL:    c.covers.CoverArtURL(rec, c.opts.CoverArtSize),
		Alt:    rec.Name,
		Height: height,
		Drag:   &item,
	}
}
