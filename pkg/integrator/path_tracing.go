package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum hit distance; it keeps a scattered ray
// from re-hitting the surface it just left because of rounding.
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{background: background}
}

// bounceResult is the outcome of following a ray to its next interaction
type bounceResult struct {
	terminated  bool      // no further bounces: escaped or absorbed
	radiance    core.Vec3 // light picked up when terminated
	attenuation core.Vec3 // throughput factor when scattered
	scattered   core.Ray  // next ray when scattered
}

// bounce follows ray one step: escape to the background, absorption, or scattering
func (pt *PathTracingIntegrator) bounce(ray core.Ray, world geometry.Hittable, sampler core.Sampler) bounceResult {
	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return bounceResult{terminated: true, radiance: pt.background.Color(ray)}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return bounceResult{terminated: true}
	}

	return bounceResult{attenuation: scatter.Attenuation, scattered: scatter.Scattered}
}

// RayColor computes the color for a single ray. It walks the path as a
// bounded loop carrying the accumulated attenuation instead of recursing.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for remaining := depth; remaining > 0; remaining-- {
		result := pt.bounce(ray, world, sampler)
		if result.terminated {
			return throughput.MultiplyVec(result.radiance)
		}
		throughput = throughput.MultiplyVec(result.attenuation)
		ray = result.scattered
	}

	// Bounce limit exceeded, no more light is gathered
	return core.Vec3{}
}
