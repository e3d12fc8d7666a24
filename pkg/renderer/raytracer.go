package renderer

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed for the per-scanline random sources
}

// DefaultSamplingConfig returns the reference render settings: a 1200x800
// image at 500 samples per pixel with 50 bounces.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           1200,
		Height:          800,
		SamplesPerPixel: 500,
		MaxDepth:        50,
		Seed:            1,
	}
}

// Validate rejects configurations that cannot be rendered
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}

// Camera generates primary rays for normalized image coordinates
type Camera interface {
	GetRay(s, t float64, sampler core.Sampler) core.Ray
}

// Raytracer estimates pixel colors. It holds no mutable state, so one
// instance can serve every worker.
type Raytracer struct {
	camera     Camera
	world      geometry.Hittable
	integrator integrator.Integrator
	config     SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera Camera, world geometry.Hittable, integratorInst integrator.Integrator, config SamplingConfig) *Raytracer {
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		config:     config,
	}
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// SamplePixel returns the sum (not the average) of SamplesPerPixel radiance
// estimates for pixel (i, j), where j counts scanlines from the bottom.
// Each sample jitters the pixel coordinate uniformly in [0,1) on both axes.
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	// Pixel centers span exactly [0,1] across the image
	uScale := float64(max(rt.config.Width-1, 1))
	vScale := float64(max(rt.config.Height-1, 1))

	var colorAccum core.Vec3
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / uScale
		t := (float64(j) + jitter.Y) / vScale

		ray := rt.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, sampler, rt.config.MaxDepth))
	}
	return colorAccum
}

// RenderScanline samples every pixel of scanline j, left to right
func (rt *Raytracer) RenderScanline(j int, sampler core.Sampler) []core.Vec3 {
	row := make([]core.Vec3, rt.config.Width)
	for i := range row {
		row[i] = rt.SamplePixel(i, j, sampler)
	}
	return row
}
