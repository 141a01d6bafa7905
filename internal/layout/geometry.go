package layout

import "math"

const (
	// TextRowHeight is the fixed height reserved below each cover for the
	// title and subtitle rows.
	TextRowHeight = 40

	// FallbackItemHeight replaces the item height while the container has
	// not been measured yet.
	FallbackItemHeight = 300
)

// Bounds is a measured container rectangle in pixels.
//
// The zero value is unmeasured, which is what the first render pass sees
// before the host reports a size.
type Bounds struct {
	Width    float64
	Height   float64
	Measured bool
}

// Measure returns measured bounds.
func Measure(width, height float64) Bounds {
	return Bounds{Width: width, Height: height, Measured: true}
}

// Geometry is the pixel geometry of a single tile.
type Geometry struct {
	// CoverHeight equals the tile width: covers are square.
	CoverHeight float64

	// TextRowHeight is always TextRowHeight.
	TextRowHeight float64
}

// Compute derives tile geometry from the container bounds and column count.
//
// CoverHeight is NaN for unmeasured bounds and may be infinite for zero
// columns. Use Valid or ItemHeight instead of reading it blindly.
func Compute(b Bounds, columns int) Geometry {
	width := math.NaN()
	if b.Measured {
		width = b.Width
	}
	return Geometry{
		CoverHeight:   width / float64(columns),
		TextRowHeight: TextRowHeight,
	}
}

// Valid reports whether CoverHeight is a finite, non-negative number.
func (g Geometry) Valid() bool {
	return !math.IsNaN(g.CoverHeight) && !math.IsInf(g.CoverHeight, 0) && g.CoverHeight >= 0
}

// ItemHeight returns the full height of one grid item, or FallbackItemHeight
// when the geometry is not usable.
func (g Geometry) ItemHeight() float64 {
	if !g.Valid() {
		return FallbackItemHeight
	}
	h := g.CoverHeight + g.TextRowHeight
	if h <= 0 {
		return FallbackItemHeight
	}
	return h
}

// CoverHeightOr returns CoverHeight, or fallback when the geometry is invalid.
func (g Geometry) CoverHeightOr(fallback float64) float64 {
	if !g.Valid() {
		return fallback
	}
	return g.CoverHeight
}
