package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// createTestWorld creates a world with a single sphere in front of the origin
func createTestWorld(m material.Material) *geometry.World {
	world := geometry.NewWorld()
	id := world.AddMaterial(m)
	world.AddSphere(core.NewVec3(0, 0, -1), 0.5, id)
	return world
}

func newSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func TestPathTracingDepthTermination(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := createTestWorld(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // hits the sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // escapes
	}
	for _, ray := range rays {
		for _, depth := range []int{0, -3} {
			if c := pt.RayColor(ray, world, newSampler(42), depth); c != (core.Vec3{}) {
				t.Errorf("Expected black for depth %d, got %v", depth, c)
			}
		}
	}
}

func TestPathTracingBackgroundGradient(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := geometry.NewWorld()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight down is white", core.NewVec3(0, -1, 0), core.NewVec3(1.0, 1.0, 1.0)},
		{"straight up is sky blue", core.NewVec3(0, 3, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"horizon is halfway", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			got := pt.RayColor(ray, world, newSampler(1), 50)
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	// The extremes are exact
	down := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), world, newSampler(1), 1)
	up := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), world, newSampler(1), 1)
	if down != core.NewVec3(1, 1, 1) || up != core.NewVec3(0.5, 0.7, 1.0) {
		t.Errorf("Expected exact gradient endpoints, got %v and %v", down, up)
	}
}

func TestPathTracingMirrorBounce(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	world := createTestWorld(material.NewMetal(albedo, 0))

	// Head-on hit reflects straight back along +Z and escapes to the horizon
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	horizon := DefaultBackground().Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	expected := albedo.MultiplyVec(horizon)

	got := pt.RayColor(ray, world, newSampler(42), 2)
	if got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// One bounce of budget is spent on the hit itself
	if c := pt.RayColor(ray, world, newSampler(42), 1); c != (core.Vec3{}) {
		t.Errorf("Expected black when the budget ends at the surface, got %v", c)
	}
}

func TestPathTracingAbsorption(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())

	// A metal floor hit at a grazing angle with full fuzz absorbs some rays
	world := geometry.NewWorld()
	id := world.AddMaterial(material.NewMetal(core.NewVec3(1, 1, 1), 1.0))
	world.AddSphere(core.NewVec3(0, -1000, 0), 1000, id)

	ray := core.NewRay(core.NewVec3(0, 0.01, 0), core.NewVec3(1, -0.05, 0))
	sampler := newSampler(42)

	black := 0
	for i := 0; i < 500; i++ {
		if pt.RayColor(ray, world, sampler, 2) == (core.Vec3{}) {
			black++
		}
	}
	if black == 0 {
		t.Error("Expected some absorbed paths to return black")
	}
}

func TestPathTracingBounceStep(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	world := createTestWorld(material.NewLambertian(albedo))

	result := pt.bounce(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, newSampler(3))
	if result.terminated {
		t.Fatal("Expected a scatter event on the diffuse sphere")
	}
	if result.attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, result.attenuation)
	}
	if math.Abs(result.scattered.Origin.Z+0.5) > 1e-9 {
		t.Errorf("Expected scattered ray to start on the sphere surface, got %v", result.scattered.Origin)
	}

	result = pt.bounce(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), world, newSampler(3))
	if !result.terminated {
		t.Fatal("Expected a ray pointing away to escape")
	}
}

func TestPathTracingGroundDeterministic(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := geometry.NewWorld()
	id := world.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	world.AddSphere(core.NewVec3(0, -1000, 0), 1000, id)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0.3, -0.5, -1))
	a := pt.RayColor(ray, world, newSampler(9), 50)
	b := pt.RayColor(ray, world, newSampler(9), 50)
	if a != b {
		t.Errorf("Expected identical results for identical seeds, got %v and %v", a, b)
	}
}
