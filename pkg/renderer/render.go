package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RenderConfig contains execution settings that never change the image
type RenderConfig struct {
	NumWorkers int // Worker goroutines; 0 uses one per CPU
}

// Renderer drives a full render: it fans scanlines out to a worker pool and
// reassembles them in image order.
type Renderer struct {
	raytracer *Raytracer
	config    RenderConfig
	logger    core.Logger
}

// NewRenderer creates a render driver
func NewRenderer(raytracer *Raytracer, config RenderConfig, logger core.Logger) *Renderer {
	return &Renderer{
		raytracer: raytracer,
		config:    config,
		logger:    logger,
	}
}

// Render renders every scanline and returns the accumulated image. The result
// depends only on the configuration and seed, never on worker scheduling.
// Cancelling ctx stops the render between scanlines.
func (r *Renderer) Render(ctx context.Context) (*Image, RenderStats, error) {
	config := r.raytracer.Config()
	if err := config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}

	startTime := time.Now()
	img := NewImage(config.Width, config.Height, config.SamplesPerPixel)

	pool := NewWorkerPool(r.raytracer, r.config.NumWorkers)
	stats := RenderStats{SamplesPerPixel: config.SamplesPerPixel, Workers: pool.GetNumWorkers()}

	r.logger.Printf("Rendering %dx%d at %d samples per pixel, depth %d (using %d workers)...\n",
		config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth, pool.GetNumWorkers())

	pool.Start(ctx)

	// Top scanline first, the same order the rows are written out
	for j := config.Height - 1; j >= 0; j-- {
		pool.SubmitTask(ScanlineTask{Row: j, Seed: ScanlineSeed(config.Seed, j)})
	}
	// Stop closes the results once the workers drain the queue; rows are
	// collected while they are still rendering
	go pool.Stop()

	for result := range pool.Results() {
		img.SetScanline(result.Row, result.Colors)
		stats.addScanline(len(result.Colors))
		r.logger.Printf("Scanlines remaining: %d\n", config.Height-stats.Scanlines)
	}

	if err := ctx.Err(); err != nil {
		return nil, stats, fmt.Errorf("render cancelled after %d of %d scanlines: %w", stats.Scanlines, config.Height, err)
	}

	stats.Duration = time.Since(startTime)
	r.logger.Printf("Done. Rendered %d samples in %v\n", stats.TotalSamples, stats.Duration)

	return img, stats, nil
}
