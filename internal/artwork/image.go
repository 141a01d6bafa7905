package artwork

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// halfBlock draws the upper pixel in the foreground and the lower pixel in
// the background, so one cell shows two pixel rows.
const halfBlock = "▀"

// ImageService turns cover art into terminal text.
//
// ImageService is used to:
//   - Decode downloaded or embedded cover art (JPEG, PNG, GIF)
//   - Scale it to a tile's cell footprint
//   - Render it with half-block characters and true colors
//
// Example usage:
//
//	svc := NewImageService()
//	img, err := svc.Decode(data)
//	art := svc.Blocks(img, 24, 12) // 24 columns, 12 rows
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Decode decodes image data in any registered format.
func (s *ImageService) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	return img, nil
}

// Scale resizes img to exactly width x height pixels.
//
// The Catmull-Rom algorithm is used for high-quality scaling. Covers are
// square and tiles are square, so the aspect ratio is not preserved.
func (s *ImageService) Scale(img image.Image, width, height int) *image.RGBA {
	width, height = max(width, 1), max(height, 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Blocks renders img as cols x rows terminal cells.
func (s *ImageService) Blocks(img image.Image, cols, rows int) string {
	cols, rows = max(cols, 1), max(rows, 1)
	px := s.Scale(img, cols, rows*2)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			top := hexColor(px.RGBAAt(col, row*2))
			bottom := hexColor(px.RGBAAt(col, row*2+1))
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(halfBlock))
		}
	}
	return b.String()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
