package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

// ErrUnknownFormat is returned by Save for extensions other than .png and .bmp.
var ErrUnknownFormat = errors.New("render: unknown image format")

// Palette colors indexed by cell value modulo its length: free cells white,
// obstacles black, labels cycle through the rest.
var Palette = []color.RGBA{
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, // 0 free
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}, // 1 obstacle
	{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}, // red
	{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF}, // orange
	{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}, // yellow
	{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}, // green
	{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF}, // blue
	{R: 0x4B, G: 0x00, B: 0x82, A: 0xFF}, // indigo
	{R: 0xEE, G: 0x82, B: 0xEE, A: 0xFF}, // violet
	{R: 0xA5, G: 0x2A, B: 0x2A, A: 0xFF}, // brown
	{R: 0x00, G: 0xFF, B: 0xFF, A: 0xFF}, // cyan
	{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}, // magenta
}

// Options controls image rendering.
type Options struct {
	CellSize   int    // Pixels per cell side
	ShowLabels bool   // Draw each cell value centered in its square
	Title      string // Optional caption drawn above the grid
}

// DefaultOptions returns 24px cells with labels and no title.
func DefaultOptions() Options {
	return Options{CellSize: 24, ShowLabels: true}
}

const titleHeight = 18

// CellColor returns the fill color for a cell value.
func CellColor(v int) color.RGBA {
	if v < 0 {
		v = -v
	}
	return Palette[v%len(Palette)]
}

// TextColor returns the label color for a cell value: black on the light
// fills (free, yellow, green, cyan), white elsewhere.
func TextColor(v int) color.Color {
	switch v {
	case 0, 4, 5, 10:
		return color.Black
	default:
		return color.White
	}
}

// Image renders g as one square per cell.
func Image(g terrain.Grid, opts Options) *image.RGBA {
	cell := opts.CellSize
	if cell <= 0 {
		cell = DefaultOptions().CellSize
	}
	top := 0
	if opts.Title != "" {
		top = titleHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, g.Cols()*cell, g.Rows()*cell+top))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	if opts.Title != "" {
		drawText(img, opts.Title, image.Rect(0, 0, img.Bounds().Dx(), top), color.Black)
	}

	for r, row := range g {
		for c, v := range row {
			rect := image.Rect(c*cell, top+r*cell, (c+1)*cell, top+(r+1)*cell)
			draw.Draw(img, rect, image.NewUniform(CellColor(v)), image.Point{}, draw.Src)
			if opts.ShowLabels {
				drawText(img, strconv.Itoa(v), rect, TextColor(v))
			}
		}
	}
	return img
}

// drawText centers s inside rect. Text that does not fit is skipped.
func drawText(dst draw.Image, s string, rect image.Rectangle, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	m := face.Metrics()
	width := d.MeasureString(s).Ceil()
	height := (m.Ascent + m.Descent).Ceil()
	if width > rect.Dx() || height > rect.Dy() {
		return
	}
	x := rect.Min.X + (rect.Dx()-width)/2
	y := rect.Min.Y + (rect.Dy()-height)/2 + m.Ascent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

// Encode writes img as PNG or BMP.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save writes img to path, choosing the encoder from the extension.
func Save(path string, img image.Image) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format != "png" && format != "bmp" {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return f.Close()
}
