package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Format selects the image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat validates a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPPM, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected ppm or png)", name)
	}
}

// FormatForFilename picks the format from the file extension. Anything that
// is not .png is written as PPM.
func FormatForFilename(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".png") {
		return FormatPNG
	}
	return FormatPPM
}

// Write encodes img to w in the given format
func Write(w io.Writer, format Format, img *renderer.Image) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return WritePNG(w, img)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// SaveImage writes img to filename, creating parent directories as needed
func SaveImage(filename string, format Format, img *renderer.Image) (err error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	return Write(file, format, img)
}
