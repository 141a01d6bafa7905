package tui

import (
	"github.com/handiism/albumgrid/internal/config"
	"github.com/handiism/albumgrid/internal/layout"
)

// Screen is the grid layout for one terminal size.
type Screen struct {
	Class   layout.WidthClass
	Columns int

	// Bounds is the grid container size in pixels.
	Bounds layout.Bounds

	// Cells is the footprint of one tile.
	Cells layout.TileCells

	// Width and Rows are the grid area in cells, margins excluded.
	Width int
	Rows  int
}

// MeasureScreen lays the grid out in an area of width x rows cells.
//
// The width class follows the whole terminal width; the container bounds
// exclude the margins and the gaps between tiles.
func MeasureScreen(s *config.Settings, width, rows int) Screen {
	metrics := s.CellMetrics()
	class := s.Breakpoints.Classify(float64(width) * metrics.Width)
	columns := layout.Columns(class)

	gridCols := max(width-2*s.MarginCells-tileGap*(columns-1), columns)
	rows = max(rows, 1)
	bounds := metrics.BoundsFromCells(gridCols, rows)

	cells := metrics.Cells(layout.Compute(bounds, columns))
	cells.Width = min(cells.Width, gridCols/columns)

	return Screen{
		Class:   class,
		Columns: columns,
		Bounds:  bounds,
		Cells:   cells,
		Width:   max(width-2*s.MarginCells, 1),
		Rows:    rows,
	}
}
