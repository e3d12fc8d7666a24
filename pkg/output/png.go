package output

import (
	"fmt"
	"image/png"
	"io"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// WritePNG encodes img as PNG using the same quantization as WritePPM
func WritePNG(w io.Writer, img *renderer.Image) error {
	if err := png.Encode(w, img.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
