package gridio

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

// obstacleLuma is the luminance below which an opaque pixel is an obstacle.
const obstacleLuma = 128

// decodeImage turns an obstacle mask into a grid, one cell per pixel.
// Dark opaque pixels become obstacles; light or transparent pixels are free.
func decodeImage(r io.Reader) (*Document, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return NewDocument("", MaskToGrid(img)), nil
}

// MaskToGrid converts img into a grid with rows along the image y axis.
func MaskToGrid(img image.Image) terrain.Grid {
	b := img.Bounds()
	g := terrain.New(b.Dy(), b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.At(x, y)
			if _, _, _, a := px.RGBA(); a < 0x8000 {
				continue
			}
			if color.GrayModel.Convert(px).(color.Gray).Y < obstacleLuma {
				g[y-b.Min.Y][x-b.Min.X] = terrain.Obstacle
			}
		}
	}
	return g
}
