package layout

import (
	"math"
	"testing"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		class WidthClass
		want  int
	}{
		{XS, 2},
		{SM, 3},
		{MD, 4},
		{LG, 6},
		{XL, 9},
		{WidthClass(42), 9},
		{WidthClass(-1), 9},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			if got := Columns(tt.class); got != tt.want {
				t.Errorf("Columns(%v) = %d, want %d", tt.class, got, tt.want)
			}
		})
	}
}

func TestParseWidthClass(t *testing.T) {
	for _, c := range []WidthClass{XS, SM, MD, LG, XL} {
		got, err := ParseWidthClass(c.String())
		if err != nil {
			t.Fatalf("ParseWidthClass(%q) error: %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseWidthClass(%q) = %v, want %v", c.String(), got, c)
		}
	}
	if _, err := ParseWidthClass("huge"); err == nil {
		t.Error("ParseWidthClass should reject unknown names")
	}
}

func TestBreakpoints_Classify(t *testing.T) {
	b := DefaultBreakpoints()

	tests := []struct {
		width float64
		want  WidthClass
	}{
		{0, XS},
		{599, XS},
		{600, SM},
		{959, SM},
		{960, MD},
		{1279, MD},
		{1280, LG},
		{1919, LG},
		{1920, XL},
		{5000, XL},
	}

	for _, tt := range tests {
		if got := b.Classify(tt.width); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}

	if !b.Valid() {
		t.Error("default breakpoints should be valid")
	}
	if (Breakpoints{SM: 900, MD: 600, LG: 1280, XL: 1920}).Valid() {
		t.Error("unordered breakpoints should be invalid")
	}
}

func TestIsDesktop(t *testing.T) {
	if IsDesktop(XS) || IsDesktop(SM) {
		t.Error("XS and SM are mobile layouts")
	}
	if !IsDesktop(MD) || !IsDesktop(LG) || !IsDesktop(XL) {
		t.Error("MD and wider are desktop layouts")
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		bounds    Bounds
		columns   int
		wantCover float64
		wantItem  float64
		wantValid bool
	}{
		{"lg container", Measure(1200, 800), 6, 200, 240, true},
		{"xs container", Measure(360, 640), 2, 180, 220, true},
		{"md container", Measure(900, 0), 4, 225, 265, true},
		{"unmeasured", Bounds{}, 4, math.NaN(), FallbackItemHeight, false},
		{"zero columns", Measure(1200, 800), 0, math.Inf(1), FallbackItemHeight, false},
		{"zero width zero columns", Measure(0, 0), 0, math.NaN(), FallbackItemHeight, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Compute(tt.bounds, tt.columns)

			if g.Valid() != tt.wantValid {
				t.Fatalf("Valid() = %v, want %v", g.Valid(), tt.wantValid)
			}
			if tt.wantValid && g.CoverHeight != tt.wantCover {
				t.Errorf("CoverHeight = %v, want %v", g.CoverHeight, tt.wantCover)
			}
			if g.TextRowHeight != TextRowHeight {
				t.Errorf("TextRowHeight = %v, want %v", g.TextRowHeight, TextRowHeight)
			}
			if got := g.ItemHeight(); got != tt.wantItem {
				t.Errorf("ItemHeight() = %v, want %v", got, tt.wantItem)
			}
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	b := Measure(1337, 900)
	for _, class := range []WidthClass{XS, SM, MD, LG, XL} {
		first := Compute(b, Columns(class))
		second := Compute(b, Columns(class))
		if first != second {
			t.Errorf("Compute is not pure for %v: %+v vs %+v", class, first, second)
		}
	}
}

func TestCellMetrics(t *testing.T) {
	m := DefaultCellMetrics()

	b := m.BoundsFromCells(150, 40)
	if !b.Measured || b.Width != 1200 || b.Height != 640 {
		t.Fatalf("BoundsFromCells = %+v, want measured 1200x640", b)
	}

	cells := m.Cells(Compute(Measure(1200, 0), 6))
	if cells.Width != 25 {
		t.Errorf("Width = %d, want 25", cells.Width)
	}
	if cells.CoverRows != 13 {
		t.Errorf("CoverRows = %d, want 13", cells.CoverRows)
	}
	if cells.TextRows != 3 {
		t.Errorf("TextRows = %d, want 3", cells.TextRows)
	}
	if cells.TotalHeight != cells.CoverRows+cells.TextRows {
		t.Errorf("TotalHeight = %d, want %d", cells.TotalHeight, cells.CoverRows+cells.TextRows)
	}

	fallback := m.Cells(Compute(Bounds{}, 6))
	if fallback.CoverRows < 1 || fallback.Width < 1 {
		t.Errorf("fallback cells must be positive, got %+v", fallback)
	}
}
