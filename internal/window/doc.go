// Package window provides the windowed record stream behind incremental
// (infinite scroll) mode.
//
// A Window knows the grid shape, the scroll position and which pages of the
// list are resident. It yields one Entry per visible cell, loaded or not:
//
//	w := window.New(window.DefaultOptions())
//	w.Layout(columns, itemHeight)
//	w.SetViewport(viewportHeight)
//
//	for _, req := range w.Pending() {
//	    go func() { results <- window.Load(ctx, loader, req) }()
//	}
//	// later, on the UI goroutine
//	w.Apply(<-results)
//
//	for e := range w.Entries() {
//	    // e.Record, e.IsLoaded, e.ItemIndex
//	}
//
// # Cancellation
//
// Every request carries the window's generation. Reset bumps it, and Apply
// drops results from older generations as well as results for pages that
// scrolled out of view while they were in flight. Dropped pages are requested
// again when they become visible.
package window
