package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/albumgrid/internal/grid"
	"github.com/handiism/albumgrid/internal/layout"
	"github.com/mattn/go-runewidth"
)

// tileGap is the number of blank columns between tiles.
const tileGap = 1

var (
	tileTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F9FA"))

	focusTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	tileSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6C757D"))

	overlayStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#000000")).
			Foreground(lipgloss.Color("#F8F9FA"))
)

// Painter draws frames as terminal text.
type Painter struct {
	Cells layout.TileCells

	// Art returns the painted cover of a tile, if one is available.
	Art func(key string) (string, bool)

	// Focus is the key of the focused tile.
	Focus string
}

// Paint draws every row of f. Hidden frames paint nothing.
func (p Painter) Paint(f grid.Frame) string {
	if f.Hidden {
		return ""
	}
	rows := f.Rows()
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, p.PaintRow(row))
	}
	return strings.Join(out, "\n")
}

// PaintRow draws one grid row.
func (p Painter) PaintRow(row []grid.Tile) string {
	parts := make([]string, 0, 2*len(row))
	for i, t := range row {
		if i > 0 {
			parts = append(parts, block(tileGap, p.Cells.TotalHeight, ""))
		}
		parts = append(parts, p.Tile(t))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Tile draws a single tile as Cells.Width x Cells.TotalHeight cells.
func (p Painter) Tile(t grid.Tile) string {
	w := max(p.Cells.Width, 1)
	if t.Kind == grid.TileEmpty {
		return block(w, p.Cells.TotalHeight, "")
	}

	lines := p.cover(t, w)

	titleStyle := tileTitleStyle
	if t.Key == p.Focus && t.Kind == grid.TileContent {
		titleStyle = focusTitleStyle
	}
	lines = append(lines,
		label(t.Title, titleStyle, w),
		label(t.Subtitle.Label, tileSubtitleStyle, w),
	)
	for i := 2; i < p.Cells.TextRows; i++ {
		lines = append(lines, strings.Repeat(" ", w))
	}
	return strings.Join(lines, "\n")
}

func (p Painter) cover(t grid.Tile, w int) []string {
	rows := max(p.Cells.CoverRows, 1)

	var lines []string
	if t.Cover.Kind == grid.CoverImage && p.Art != nil {
		if art, ok := p.Art(t.Key); ok && art != "" {
			lines = strings.Split(art, "\n")
		}
	}
	if lines == nil {
		color := t.Cover.Color
		if color == "" {
			color = grid.PlaceholderColor
		}
		lines = strings.Split(block(w, rows, color), "\n")
	}

	switch {
	case len(lines) > rows:
		lines = lines[:rows]
	case len(lines) < rows:
		filler := block(w, rows-len(lines), grid.PlaceholderColor)
		lines = append(lines, strings.Split(filler, "\n")...)
	}

	if t.Overlay.Visible {
		lines[len(lines)-1] = overlayBar(t.Overlay, w)
	}
	return lines
}

// label fits l into w cells. Transparent labels keep their footprint but
// show only their background.
func label(l grid.Label, style lipgloss.Style, w int) string {
	text := runewidth.Truncate(l.Text, w, "…")
	if !l.Transparent {
		return style.Render(runewidth.FillRight(text, w))
	}

	used := runewidth.StringWidth(text)
	filled := strings.Repeat(" ", used)
	if l.Background != "" {
		filled = lipgloss.NewStyle().Background(lipgloss.Color(l.Background)).Render(filled)
	}
	return filled + strings.Repeat(" ", w-used)
}

func overlayBar(o grid.Overlay, w int) string {
	icons := make([]string, 0, len(o.Actions))
	for _, a := range o.Actions {
		switch a {
		case grid.ActionPlay:
			icons = append(icons, "▶")
		case grid.ActionMenu:
			icons = append(icons, "≡")
		}
	}
	text := runewidth.Truncate(" "+strings.Join(icons, "  "), w, "")
	return overlayStyle.Render(runewidth.FillRight(text, w))
}

// block returns h lines of w blanks, filled with color when set.
func block(w, h int, color string) string {
	if h < 1 {
		return ""
	}
	line := strings.Repeat(" ", w)
	if color != "" {
		line = lipgloss.NewStyle().Background(lipgloss.Color(color)).Render(line)
	}
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// crop returns n lines of s starting at line offset.
func crop(s string, offset, n int) string {
	lines := strings.Split(s, "\n")
	offset = min(max(offset, 0), len(lines))
	end := min(offset+max(n, 0), len(lines))
	return strings.Join(lines[offset:end], "\n")
}
