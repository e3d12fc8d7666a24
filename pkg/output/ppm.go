package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// WritePPM writes img as a plain-text PPM: the P3 tag, "width height", the
// maximum channel value 255, then one "R G B" line per pixel starting with
// the top row, left to right.
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height)
	for _, sum := range img.Pixels {
		r, g, b := renderer.FormatColor(sum, img.Samples)
		fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
	}

	// bufio keeps the first write error; Flush reports it
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}
