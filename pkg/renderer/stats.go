package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	Scanlines       int           // Scanlines completed
	Workers         int           // Worker goroutines used
	Duration        time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the sampling throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// addScanline records a completed scanline of width pixels
func (s *RenderStats) addScanline(width int) {
	s.Scanlines++
	s.TotalPixels += width
	s.TotalSamples += width * s.SamplesPerPixel
}
