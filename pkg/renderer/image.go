package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Image holds the raw per-pixel sample sums of a render, row-major with the
// visually top row first. Colors are only averaged and quantized on output.
type Image struct {
	Width   int
	Height  int
	Samples int         // Samples accumulated into every pixel
	Pixels  []core.Vec3 // len == Width*Height
}

// NewImage creates a black image
func NewImage(width, height, samples int) *Image {
	return &Image{
		Width:   width,
		Height:  height,
		Samples: samples,
		Pixels:  make([]core.Vec3, width*height),
	}
}

// SetScanline stores the sums for scanline j, counted from the bottom
func (img *Image) SetScanline(j int, colors []core.Vec3) {
	y := img.Height - 1 - j
	copy(img.Pixels[y*img.Width:(y+1)*img.Width], colors)
}

// At returns the sample sum at (x, y), y counted from the top
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// FormatColor turns a sample sum into 8-bit channels: average, clamp to
// [0,1], gamma 2 (square root), then scale by 256 and truncate, capped at 255.
func FormatColor(sum core.Vec3, samples int) (r, g, b int) {
	c := sum.Divide(float64(samples)).Clamp(0.0, 1.0).Sqrt()
	return quantize(c.X), quantize(c.Y), quantize(c.Z)
}

func quantize(x float64) int {
	// NaN survives clamping; show it as black
	if math.IsNaN(x) {
		return 0
	}
	return min(int(256*x), 255)
}

// ToRGBA converts the image to a displayable RGBA image
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := FormatColor(img.At(x, y), img.Samples)
			out.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return out
}
