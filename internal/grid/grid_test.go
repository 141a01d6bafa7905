package grid

import (
	"context"
	"fmt"
	"testing"

	"github.com/handiism/albumgrid/internal/dnd"
	"github.com/handiism/albumgrid/internal/layout"
	"github.com/handiism/albumgrid/internal/model"
	"github.com/handiism/albumgrid/internal/window"
)

// countingResolver records every cover URL resolution.
type countingResolver struct {
	calls []string
}

func (r *countingResolver) CoverArtURL(a *model.Album, size int) string {
	r.calls = append(r.calls, a.ID)
	return fmt.Sprintf("https://covers.test/%s?size=%d", a.ID, size)
}

func testAlbums(n int) []*model.Album {
	albums := make([]*model.Album, n)
	for i := range albums {
		albums[i] = &model.Album{
			ID:       fmt.Sprintf("al-%02d", i),
			Name:     fmt.Sprintf("Album %d", i),
			ArtistID: "ar-1",
			Artist:   "Artist One",
			MinYear:  1990 + i,
			MaxYear:  1995 + i,
		}
	}
	return albums
}

func bulkList(albums []*model.Album) ListContext {
	ids, data := model.Index(albums)
	return ListContext{IDs: ids, Data: data, ListType: ListTypeAlphabeticalByName}
}

func TestBulk_EndToEnd(t *testing.T) {
	resolver := &countingResolver{}
	drags := dnd.NewRegistry()
	c := NewContainer(DefaultOptions(), resolver, drags, nil)

	albums := testAlbums(18)
	frame := c.Render(bulkList(albums), View{
		Bounds: layout.Measure(1200, 900),
		Class:  layout.LG,
	})

	if frame.Hidden {
		t.Fatal("frame should not be hidden")
	}
	if frame.Columns != 6 {
		t.Errorf("Columns = %d, want 6", frame.Columns)
	}
	if frame.Geometry.CoverHeight != 200 {
		t.Errorf("CoverHeight = %v, want 200", frame.Geometry.CoverHeight)
	}
	if frame.Geometry.TextRowHeight != 40 {
		t.Errorf("TextRowHeight = %v, want 40", frame.Geometry.TextRowHeight)
	}
	if len(frame.Tiles) != 18 {
		t.Fatalf("got %d tiles, want 18", len(frame.Tiles))
	}

	for i, tile := range frame.Tiles {
		want := albums[i].ID
		if tile.Key != want || tile.Record.ID != want {
			t.Errorf("tile %d = %s, want %s", i, tile.Key, want)
		}
		if tile.Kind != TileContent {
			t.Errorf("tile %d kind = %v, want content", i, tile.Kind)
		}
		if tile.Cover.Drag == nil {
			t.Errorf("tile %d has no drag source", i)
		}
		item, ok := drags.Source(want)
		if !ok {
			t.Fatalf("no drag source registered for %s", want)
		}
		if item.Kind != dnd.KindAlbum || item.Effect != dnd.Copy {
			t.Errorf("drag item for %s = %+v", want, item)
		}
		if ids := item.Payload.AlbumIDs; len(ids) != 1 || ids[0] != want {
			t.Errorf("payload for %s = %v", want, ids)
		}
	}
	if drags.Len() != 18 {
		t.Errorf("registry holds %d sources, want 18", drags.Len())
	}
	if len(frame.Rows()) != 3 {
		t.Errorf("Rows() = %d, want 3", len(frame.Rows()))
	}
}

func TestBulk_MissingRecordRendersNothing(t *testing.T) {
	drags := dnd.NewRegistry()
	c := NewContainer(DefaultOptions(), &countingResolver{}, drags, nil)

	list := bulkList(testAlbums(3))
	list.IDs = append(list.IDs, "ghost")

	frame := c.Render(list, View{Bounds: layout.Measure(800, 600), Class: layout.SM})

	if len(frame.Tiles) != 4 {
		t.Fatalf("got %d tiles, want 4", len(frame.Tiles))
	}
	ghost := frame.Tiles[3]
	if ghost.Kind != TileEmpty || ghost.Key != "ghost" {
		t.Errorf("missing record tile = %+v, want empty tile keyed ghost", ghost)
	}
	if _, ok := drags.Source("ghost"); ok {
		t.Error("missing record must not bind a drag source")
	}
}

func TestBulk_DragSourcesFollowRenderedTiles(t *testing.T) {
	drags := dnd.NewRegistry()
	c := NewContainer(DefaultOptions(), &countingResolver{}, drags, nil)
	view := View{Bounds: layout.Measure(800, 600), Class: layout.MD}

	albums := testAlbums(4)
	c.Render(bulkList(albums), view)
	c.Render(bulkList(albums[:2]), view)

	if drags.Len() != 2 {
		t.Errorf("registry holds %d sources, want 2", drags.Len())
	}
	if _, ok := drags.Source(albums[3].ID); ok {
		t.Error("unmounted tile kept its drag source")
	}

	// switching to a loading random list unmounts everything
	hidden := bulkList(albums)
	hidden.ListType = ListTypeRandom
	hidden.Loading = true
	c.Render(hidden, view)
	if drags.Len() != 0 {
		t.Errorf("hidden frame kept %d drag sources", drags.Len())
	}
}

func TestIncremental_EndToEnd(t *testing.T) {
	albums := testAlbums(3)
	win := window.New(window.Options{PageSize: 5})
	loader := window.LoaderFunc(func(_ context.Context, offset, limit int) (window.Page, error) {
		// the last two records have not resolved yet
		return window.Page{Records: []*model.Album{albums[0], albums[1], albums[2], nil, nil}, Done: true}, nil
	})

	resolver := &countingResolver{}
	drags := dnd.NewRegistry()
	opts := DefaultOptions()
	opts.Mode = Incremental
	c := NewContainer(opts, resolver, drags, win)

	list := ListContext{IDs: []string{}, Data: map[string]*model.Album{}}
	view := View{Bounds: layout.Measure(1800, 1000), Class: layout.XL}

	// first pass: nothing resident, every cell is a skeleton
	frame := c.Render(list, view)
	for _, tile := range frame.Tiles {
		if tile.Kind != TileSkeleton {
			t.Fatalf("tile %s should be a skeleton before loading", tile.Key)
		}
	}
	if len(resolver.calls) != 0 {
		t.Fatalf("cover URLs resolved for unloaded cells: %v", resolver.calls)
	}

	if err := win.Preload(context.Background(), loader, 1); err != nil {
		t.Fatal(err)
	}
	frame = c.Render(list, view)

	if len(frame.Tiles) != 5 {
		t.Fatalf("got %d tiles, want 5", len(frame.Tiles))
	}
	for i := 0; i < 3; i++ {
		tile := frame.Tiles[i]
		if tile.Kind != TileContent {
			t.Errorf("tile %d kind = %v, want content", i, tile.Kind)
		}
		if tile.Key != albums[i].ID {
			t.Errorf("tile %d key = %s, want %s", i, tile.Key, albums[i].ID)
		}
		if tile.Cover.Kind != CoverImage {
			t.Errorf("tile %d should show its cover image", i)
		}
		if tile.Cover.Drag != nil {
			t.Errorf("incremental tile %d must not be a drag source", i)
		}
	}
	for i := 3; i < 5; i++ {
		tile := frame.Tiles[i]
		if tile.Kind != TileSkeleton {
			t.Errorf("tile %d kind = %v, want skeleton", i, tile.Kind)
		}
		if tile.Key != fmt.Sprintf("#%d", i) {
			t.Errorf("tile %d key = %s, want positional key", i, tile.Key)
		}
		if tile.Cover.Kind != CoverPlaceholder || tile.Cover.Color != PlaceholderColor {
			t.Errorf("tile %d cover = %+v, want placeholder", i, tile.Cover)
		}
		if tile.Title.Text != SkeletonTitle || !tile.Title.Transparent {
			t.Errorf("tile %d title = %+v", i, tile.Title)
		}
		if tile.Subtitle.Text != SkeletonSubtitle || !tile.Subtitle.Transparent {
			t.Errorf("tile %d subtitle = %+v", i, tile.Subtitle)
		}
	}

	if len(resolver.calls) != 3 {
		t.Errorf("resolver called %d times, want 3 (loaded cells only)", len(resolver.calls))
	}
	if drags.Len() != 0 {
		t.Errorf("incremental mode bound %d drag sources", drags.Len())
	}
}

func TestSubtitle_FollowsArtistFilter(t *testing.T) {
	c := NewContainer(DefaultOptions(), &countingResolver{}, nil, nil)
	album := &model.Album{ID: "al-1", Name: "One", ArtistID: "ar-9", Artist: "Nine", MinYear: 2001, MaxYear: 2004}
	view := View{Bounds: layout.Measure(1000, 600), Class: layout.MD}

	list := bulkList([]*model.Album{album})
	sub := c.Render(list, view).Tiles[0].Subtitle
	if sub.Kind != SubtitleArtist {
		t.Fatalf("unfiltered subtitle kind = %v, want artist", sub.Kind)
	}
	if sub.Text != "Nine" || sub.Link != "/artist/ar-9/show" {
		t.Errorf("artist subtitle = %+v", sub)
	}

	list.FilterValues = Filter{ArtistID: "ar-9"}
	sub = c.Render(list, view).Tiles[0].Subtitle
	if sub.Kind != SubtitleYearRange {
		t.Fatalf("artist view subtitle kind = %v, want year range", sub.Kind)
	}
	if sub.Text != "2001 - 2004" {
		t.Errorf("year range = %q", sub.Text)
	}
	if sub.SortBy != "max_year" || sub.Order != "DESC" || sub.DataKey != "maxYear" {
		t.Errorf("year range sort = %s %s %s", sub.SortBy, sub.Order, sub.DataKey)
	}
}

func TestOverlayVisibility(t *testing.T) {
	c := NewContainer(DefaultOptions(), &countingResolver{}, nil, nil)
	list := bulkList(testAlbums(2))

	tests := []struct {
		name  string
		class layout.WidthClass
		hover string
		want  []bool
	}{
		{"desktop no hover", layout.LG, "", []bool{false, false}},
		{"desktop hover", layout.LG, "al-01", []bool{false, true}},
		{"mobile", layout.XS, "", []bool{true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := c.Render(list, View{Bounds: layout.Measure(1000, 600), Class: tt.class, Hover: tt.hover})
			for i, tile := range frame.Tiles {
				if tile.Overlay.Visible != tt.want[i] {
					t.Errorf("tile %d overlay visible = %v, want %v", i, tile.Overlay.Visible, tt.want[i])
				}
				if len(tile.Overlay.Actions) != 2 {
					t.Errorf("tile %d actions = %v, want play and menu", i, tile.Overlay.Actions)
				}
			}
		})
	}
}

func TestHidden(t *testing.T) {
	albums := testAlbums(2)
	ids, data := model.Index(albums)

	tests := []struct {
		name string
		list ListContext
		want bool
	}{
		{"ready", ListContext{IDs: ids, Data: data}, false},
		{"random loading", ListContext{IDs: ids, Data: data, Loading: true, ListType: ListTypeRandom}, true},
		{"random loaded", ListContext{IDs: ids, Data: data, ListType: ListTypeRandom}, false},
		{"newest loading", ListContext{IDs: ids, Data: data, Loading: true, ListType: ListTypeNewest}, false},
		{"no data", ListContext{IDs: ids}, true},
		{"no ids", ListContext{Data: data}, true},
		{"empty list", ListContext{IDs: []string{}, Data: map[string]*model.Album{}}, false},
	}

	c := NewContainer(DefaultOptions(), &countingResolver{}, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.Hidden(); got != tt.want {
				t.Errorf("Hidden() = %v, want %v", got, tt.want)
			}
			frame := c.Render(tt.list, View{Class: layout.MD})
			if frame.Hidden != tt.want {
				t.Errorf("frame.Hidden = %v, want %v", frame.Hidden, tt.want)
			}
		})
	}
}

func TestEmptyListRendersEmptyGrid(t *testing.T) {
	c := NewContainer(DefaultOptions(), &countingResolver{}, nil, nil)
	frame := c.Render(ListContext{IDs: []string{}, Data: map[string]*model.Album{}}, View{Class: layout.SM})

	if frame.Hidden {
		t.Fatal("empty list should render a grid")
	}
	if len(frame.Tiles) != 0 || frame.Extent != 0 {
		t.Errorf("got %d tiles, extent %d; want none", len(frame.Tiles), frame.Extent)
	}
	if frame.Columns != 3 {
		t.Errorf("Columns = %d, want 3", frame.Columns)
	}
}

func TestUnmeasuredFallback(t *testing.T) {
	c := NewContainer(DefaultOptions(), &countingResolver{}, nil, nil)
	frame := c.Render(bulkList(testAlbums(1)), View{Class: layout.MD})

	if frame.ItemHeight != layout.FallbackItemHeight {
		t.Errorf("ItemHeight = %v, want %v", frame.ItemHeight, layout.FallbackItemHeight)
	}
	if h := frame.Tiles[0].Cover.Height; h != layout.FallbackItemHeight-layout.TextRowHeight {
		t.Errorf("cover height = %v, want %v", h, layout.FallbackItemHeight-layout.TextRowHeight)
	}
}

func TestTileLinks(t *testing.T) {
	c := NewContainer(Options{BasePath: "/album"}, &countingResolver{}, nil, nil)
	frame := c.Render(bulkList(testAlbums(1)), View{Class: layout.MD})

	tile := frame.Tiles[0]
	if tile.Link != "/album/al-00/show" {
		t.Errorf("Link = %q", tile.Link)
	}
	if tile.Title.Link != tile.Link {
		t.Errorf("title link %q differs from cover link %q", tile.Title.Link, tile.Link)
	}
	if tile.Cover.URL != "https://covers.test/al-00?size=300" {
		t.Errorf("cover URL = %q", tile.Cover.URL)
	}
}

func TestLinkToRecord(t *testing.T) {
	tests := []struct {
		base, id, view string
		want           string
	}{
		{"/album", "al-1", "show", "/album/al-1/show"},
		{"/album/", "al-1", "edit", "/album/al-1"},
		{"/album", "a b/c", "show", "/album/a%20b%2Fc/show"},
	}
	for _, tt := range tests {
		if got := LinkToRecord(tt.base, tt.id, tt.view); got != tt.want {
			t.Errorf("LinkToRecord(%q, %q, %q) = %q, want %q", tt.base, tt.id, tt.view, got, tt.want)
		}
	}
}

func TestModeFor(t *testing.T) {
	if ModeFor(true) != Incremental || ModeFor(false) != Bulk {
		t.Error("ModeFor should map the infinite scroll flag")
	}
}

func TestIncremental_RowHeightDrivesWindow(t *testing.T) {
	tests := []struct {
		name      string
		rowHeight float64
		wantRow   float64
		wantTiles int
	}{
		// 1800 px over 9 columns: 200 px covers, 240 px items
		{"geometry", 0, 240, 5 * 9},
		{"host rows", 500, 500, 2 * 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Mode = Incremental
			c := NewContainer(opts, &countingResolver{}, nil, window.New(window.Options{PageSize: 100}))

			list := ListContext{IDs: []string{}, Data: map[string]*model.Album{}}
			f := c.Render(list, View{Bounds: layout.Measure(1800, 1000), Class: layout.XL, RowHeight: tt.rowHeight})
			if f.ItemHeight != 240 || f.RowHeight != tt.wantRow {
				t.Errorf("item height %v, row height %v; want 240, %v", f.ItemHeight, f.RowHeight, tt.wantRow)
			}
			if len(f.Tiles) != tt.wantTiles {
				t.Errorf("got %d tiles, want %d", len(f.Tiles), tt.wantTiles)
			}
		})
	}
}
