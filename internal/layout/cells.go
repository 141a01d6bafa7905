package layout

import "math"

// CellMetrics is the pixel size of one terminal character cell.
//
// Terminals do not report pixel sizes reliably, so the host treats them as
// configuration. 8x16 matches most monospace fonts closely enough for the
// breakpoints to behave like their browser counterparts.
type CellMetrics struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// DefaultCellMetrics returns 8x16 pixel cells.
func DefaultCellMetrics() CellMetrics {
	return CellMetrics{Width: 8, Height: 16}
}

// BoundsFromCells converts a terminal size to measured pixel bounds.
func (m CellMetrics) BoundsFromCells(cols, rows int) Bounds {
	return Measure(float64(cols)*m.Width, float64(rows)*m.Height)
}

// Cols converts a horizontal pixel length to whole cells (at least 1).
func (m CellMetrics) Cols(px float64) int {
	return toCells(px, m.Width)
}

// Rows converts a vertical pixel length to whole cells (at least 1).
func (m CellMetrics) Rows(px float64) int {
	return toCells(px, m.Height)
}

func toCells(px, size float64) int {
	if size <= 0 || math.IsNaN(px) || math.IsInf(px, 0) {
		return 1
	}
	n := int(math.Round(px / size))
	if n < 1 {
		return 1
	}
	return n
}

// TileCells is a tile's footprint in terminal cells.
type TileCells struct {
	Width       int
	CoverRows   int
	TextRows    int
	TotalHeight int
}

// Cells converts tile geometry to cells. Invalid geometry uses the fallback
// item height split the same way a square cover would be.
func (m CellMetrics) Cells(g Geometry) TileCells {
	cover := g.CoverHeightOr(FallbackItemHeight - TextRowHeight)
	tc := TileCells{
		Width:     m.Cols(cover),
		CoverRows: m.Rows(cover),
		TextRows:  m.Rows(g.TextRowHeight),
	}
	if tc.TextRows < 2 {
		tc.TextRows = 2
	}
	tc.TotalHeight = tc.CoverRows + tc.TextRows
	return tc
}
