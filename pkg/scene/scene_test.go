package scene

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

func renderScene(t *testing.T, s *Scene, workers int) *renderer.Image {
	t.Helper()
	r := renderer.NewRenderer(s.NewRaytracer(), renderer.RenderConfig{NumWorkers: workers}, renderer.NewWriterLogger(io.Discard))
	img, _, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return img
}

func TestGroundSceneDeterministic(t *testing.T) {
	s := NewGroundScene()
	s.SamplingConfig = renderer.SamplingConfig{Width: 30, Height: 20, SamplesPerPixel: 1, MaxDepth: 1, Seed: 42}

	first := renderScene(t, s, 1)
	second := renderScene(t, s, 4)

	for i := range first.Pixels {
		if first.Pixels[i] != second.Pixels[i] {
			t.Fatalf("Pixel %d differs between runs with the same seed: %v vs %v", i, first.Pixels[i], second.Pixels[i])
		}
	}
}

func TestGroundSceneHorizon(t *testing.T) {
	s := NewGroundScene()
	s.SamplingConfig = renderer.SamplingConfig{Width: 30, Height: 20, SamplesPerPixel: 1, MaxDepth: 1, Seed: 7}
	img := renderScene(t, s, 2)

	// Depth 1 leaves the ground black; the sky above is the background gradient
	top := img.At(15, 0)
	if top.X <= 0 || top.Z <= top.X {
		t.Errorf("Expected bluish sky in the top row, got %v", top)
	}
	bottom := img.At(15, 19)
	if bottom != (core.Vec3{}) {
		t.Errorf("Expected black ground in the bottom row at depth 1, got %v", bottom)
	}
}

func TestGroundSceneContents(t *testing.T) {
	s := NewGroundScene()
	shapes := s.World.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("Expected only the ground sphere, got %d shapes", len(shapes))
	}
	ground, ok := shapes[0].(*geometry.Sphere)
	if !ok {
		t.Fatalf("Expected *geometry.Sphere, got %T", shapes[0])
	}
	if ground.Center != core.NewVec3(0, -1000, 0) || ground.Radius != 1000 {
		t.Errorf("Unexpected ground sphere %+v", ground)
	}
	m := s.World.Material(ground.MaterialID)
	if m.Kind != material.KindLambertian || m.Albedo != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Unexpected ground material %+v", m)
	}
}

func TestDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if got := len(s.World.Shapes()); got != 4 {
		t.Errorf("Expected ground plus three spheres, got %d shapes", got)
	}
	if s.SamplingConfig.Width != 1200 || s.SamplingConfig.Height != 800 {
		t.Errorf("Expected 1200x800, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}

	kinds := map[material.Kind]bool{}
	for _, shape := range s.World.Shapes()[1:] {
		kinds[s.World.Material(shape.(*geometry.Sphere).MaterialID).Kind] = true
	}
	for _, kind := range []material.Kind{material.KindLambertian, material.KindMetal, material.KindDielectric} {
		if !kinds[kind] {
			t.Errorf("Expected a %v sphere", kind)
		}
	}
}

func TestDefaultSceneCameraOverride(t *testing.T) {
	s := NewDefaultScene(geometry.CameraConfig{VFov: 45})
	if s.CameraConfig.VFov != 45 {
		t.Errorf("Expected overridden vfov 45, got %f", s.CameraConfig.VFov)
	}
	if s.CameraConfig.AspectRatio != 1.5 {
		t.Errorf("Expected default aspect ratio to survive the merge, got %f", s.CameraConfig.AspectRatio)
	}
}

func TestRandomSceneSeeded(t *testing.T) {
	a := NewRandomScene(3)
	b := NewRandomScene(3)
	c := NewRandomScene(4)

	if len(a.World.Shapes()) != len(b.World.Shapes()) {
		t.Fatalf("Same seed produced %d and %d shapes", len(a.World.Shapes()), len(b.World.Shapes()))
	}
	for i, shape := range a.World.Shapes() {
		if *shape.(*geometry.Sphere) != *b.World.Shapes()[i].(*geometry.Sphere) {
			t.Fatalf("Shape %d differs between runs with the same seed", i)
		}
	}

	same := len(a.World.Shapes()) == len(c.World.Shapes())
	if same {
		for i, shape := range a.World.Shapes() {
			if *shape.(*geometry.Sphere) != *c.World.Shapes()[i].(*geometry.Sphere) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Expected different seeds to produce different layouts")
	}

	if !a.World.HasBVH() {
		t.Error("Expected the random scene to build a BVH")
	}
	// Ground first, three large spheres last
	if n := len(a.World.Shapes()); n < 4+400 {
		t.Errorf("Expected several hundred spheres, got %d", n)
	}
}

func TestSphereGridScene(t *testing.T) {
	s := NewSphereGridScene(5)
	if got := len(s.World.Shapes()); got != 1+25 {
		t.Errorf("Expected 26 shapes, got %d", got)
	}
	for _, shape := range s.World.Shapes()[1:] {
		m := s.World.Material(shape.(*geometry.Sphere).MaterialID)
		if m.Kind != material.KindMetal {
			t.Errorf("Expected metal spheres, got %v", m.Kind)
		}
		for _, c := range []float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z} {
			if c < 0 || c > 1 {
				t.Errorf("Albedo %v outside [0,1]", m.Albedo)
			}
		}
	}
}

func TestOklchToRGB(t *testing.T) {
	// Zero chroma is a gray with all channels equal
	gray := oklchToRGB(0.6, 0, 120)
	if math.Abs(gray.X-gray.Y) > 1e-6 || math.Abs(gray.Y-gray.Z) > 1e-6 {
		t.Errorf("Expected gray, got %v", gray)
	}
	white := oklchToRGB(1, 0, 0)
	if math.Abs(white.X-1) > 1e-6 || math.Abs(white.Y-1) > 1e-6 || math.Abs(white.Z-1) > 1e-6 {
		t.Errorf("Expected white, got %v", white)
	}
}

func TestSetImageWidth(t *testing.T) {
	tests := []struct {
		width      int
		aspect     float64
		wantHeight int
	}{
		{1200, 1.5, 800},
		{400, 2.0, 200},
		{100, 1.5, 66},
		{1, 1.5, 1},
	}

	for _, tt := range tests {
		s := NewScene(geometry.CameraConfig{AspectRatio: tt.aspect})
		s.SetImageWidth(tt.width)
		if s.SamplingConfig.Width != tt.width || s.SamplingConfig.Height != tt.wantHeight {
			t.Errorf("SetImageWidth(%d) at aspect %f = %dx%d, want height %d",
				tt.width, tt.aspect, s.SamplingConfig.Width, s.SamplingConfig.Height, tt.wantHeight)
		}
	}
}

func TestFinalize(t *testing.T) {
	s := NewScene(DefaultCameraConfig())
	if err := s.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if s.Camera == nil {
		t.Error("Expected camera after Finalize")
	}

	bad := DefaultCameraConfig()
	bad.LookAt = bad.LookFrom
	s = NewScene(bad)
	if err := s.Finalize(); err == nil {
		t.Error("Expected error when look_from equals look_at")
	}
}
