// Package grid renders the album gallery.
//
// A Container turns a ListContext and the host's View (measured bounds,
// width class, hovered tile) into a Frame: the column count, tile geometry
// and one Tile per visible cell. Frames are plain values; painting them is
// up to the host.
//
//	c := grid.NewContainer(grid.DefaultOptions(), resolver, drags, win)
//	frame := c.Render(list, grid.View{
//	    Bounds: layout.Measure(1200, 800),
//	    Class:  layout.LG,
//	})
//	frame.Columns                // 6
//	frame.Geometry.CoverHeight   // 200
//
// # Display modes
//
// Bulk mode walks the list's ids in order and binds an album drag source per
// tile. Incremental mode asks the window for the visible cells and renders
// skeletons for records that have not arrived; it never resolves cover URLs
// for them.
package grid
