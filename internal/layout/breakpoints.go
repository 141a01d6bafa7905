package layout

import (
	"fmt"
	"strings"
)

// WidthClass is a breakpoint bucket derived from the viewport width.
type WidthClass int

const (
	XS WidthClass = iota
	SM
	MD
	LG
	XL
)

// String returns the short breakpoint name ("xs" .. "xl").
func (c WidthClass) String() string {
	switch c {
	case XS:
		return "xs"
	case SM:
		return "sm"
	case MD:
		return "md"
	case LG:
		return "lg"
	case XL:
		return "xl"
	default:
		return "unknown"
	}
}

// ParseWidthClass parses a breakpoint name as printed by String.
func ParseWidthClass(s string) (WidthClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xs":
		return XS, nil
	case "sm":
		return SM, nil
	case "md":
		return MD, nil
	case "lg":
		return LG, nil
	case "xl":
		return XL, nil
	}
	return XS, fmt.Errorf("unknown width class %q", s)
}

// Columns returns the grid column count for a width class.
//
// Anything above LG, including values outside the enumeration, gets 9 columns.
func Columns(c WidthClass) int {
	switch c {
	case XS:
		return 2
	case SM:
		return 3
	case MD:
		return 4
	case LG:
		return 6
	}
	return 9
}

// IsDesktop reports whether the class is MD or wider.
// Tile overlays are revealed on hover there and always shown otherwise.
func IsDesktop(c WidthClass) bool {
	return c >= MD
}

// Breakpoints holds the lower pixel bound of each class above XS.
type Breakpoints struct {
	SM float64 `json:"sm" toml:"sm"`
	MD float64 `json:"md" toml:"md"`
	LG float64 `json:"lg" toml:"lg"`
	XL float64 `json:"xl" toml:"xl"`
}

// DefaultBreakpoints returns the usual 600/960/1280/1920 px thresholds.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{SM: 600, MD: 960, LG: 1280, XL: 1920}
}

// Classify maps a raw viewport width in pixels to its width class.
func (b Breakpoints) Classify(widthPx float64) WidthClass {
	switch {
	case widthPx >= b.XL:
		return XL
	case widthPx >= b.LG:
		return LG
	case widthPx >= b.MD:
		return MD
	case widthPx >= b.SM:
		return SM
	default:
		return XS
	}
}

// Valid reports whether the thresholds are positive and strictly increasing.
func (b Breakpoints) Valid() bool {
	return b.SM > 0 && b.SM < b.MD && b.MD < b.LG && b.LG < b.XL
}
