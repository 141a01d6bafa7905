package grid

import (
	"github.com/handiism/albumgrid/internal/model"
)

// Skeleton label texts. They are sized like real labels and drawn
// transparent so a pending cell already has its final height.
const (
	SkeletonTitle    = "Album Name"
	SkeletonSubtitle = "Album Subtitle"
)

// TileKind tags a Tile.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileSkeleton
	TileContent
)

// Label is a single-line text element.
type Label struct {
	Text string

	// Link is the route the label navigates to, if any.
	Link string

	// Transparent labels reserve space without showing their text.
	Transparent bool

	// Background fills the label box; empty means none.
	Background string
}

// SubtitleKind tells what the subtitle shows.
type SubtitleKind int

const (
	SubtitleArtist SubtitleKind = iota
	SubtitleYearRange
)

// Subtitle is the second text row of a tile.
type Subtitle struct {
	Label
	Kind SubtitleKind

	// SortBy, Order and DataKey describe how a year-range subtitle sorts
	// the list when activated.
	SortBy  string
	Order   string
	DataKey string
}

// Action is an overlay button.
type Action int

const (
	ActionPlay Action = iota
	ActionMenu
)

// Overlay is the action bar drawn over the bottom of a cover.
type Overlay struct {
	Visible bool
	Actions []Action
}

// Tile is the rendered state of one grid cell.
type Tile struct {
	Key   string
	Index int
	Kind  TileKind

	Record   *model.Album
	Link     string
	Cover    Cover
	Title    Label
	Subtitle Subtitle
	Overlay  Overlay
}

type tileProps struct {
	mode       DisplayMode
	key        string
	index      int
	record     *model.Album
	isLoaded   bool
	basePath   string
	showArtist bool
	hovered    bool
	desktop    bool
	height     float64
}

// renderTile resolves one grid cell.
func (c *Container) renderTile(p tileProps) Tile {
	t := Tile{Key: p.key, Index: p.index, Record: p.record}

	if p.mode == Bulk && p.record == nil {
		t.Kind = TileEmpty
		return t
	}

	if p.mode == Incremental && (p.record == nil || !p.isLoaded) {
		t.Kind = TileSkeleton
		t.Record = nil
		t.Cover = c.renderCover(p.mode, p.key, nil, false, p.height)
		t.Title = Label{Text: SkeletonTitle, Transparent: true, Background: PlaceholderColor}
		t.Subtitle = Subtitle{
			Label: Label{Text: SkeletonSubtitle, Transparent: true, Background: PlaceholderColor},
		}
		return t
	}

	rec := p.record
	t.Kind = TileContent
	t.Link = LinkToRecord(p.basePath, rec.ID, "show")
	t.Cover = c.renderCover(p.mode, p.key, rec, true, p.height)
	t.Title = Label{Text: rec.Name, Link: t.Link}
	t.Overlay = Overlay{
		Visible: !p.desktop || p.hovered,
		Actions: []Action{ActionPlay, ActionMenu},
	}

	if p.showArtist {
		t.Subtitle = Subtitle{
			Kind:  SubtitleArtist,
			Label: Label{Text: rec.Artist, Link: LinkToRecord("/artist", rec.ArtistID, "show")},
		}
	} else {
		t.Subtitle = Subtitle{
			Kind:    SubtitleYearRange,
			Label:   Label{Text: rec.YearRange()},
			SortBy:  "max_year",
			Order:   "DESC",
			DataKey: "maxYear",
		}
	}
	return t
}
