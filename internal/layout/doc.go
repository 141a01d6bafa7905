// Package layout derives grid geometry from viewport measurements.
//
// It holds the two pure functions at the bottom of the album grid:
//
//	cols := layout.Columns(layout.LG)                 // 6
//	geo := layout.Compute(layout.Measure(1200, 0), cols)
//	geo.CoverHeight                                   // 200
//	geo.ItemHeight()                                  // 240
//
// Unmeasured bounds never produce invalid geometry downstream: ItemHeight
// falls back to FallbackItemHeight. CellMetrics translates pixel geometry
// to terminal cells for the TUI.
package layout
