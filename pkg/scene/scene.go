package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// DefaultOutputName is the film filename used when a scene does not name one
const DefaultOutputName = "default.ppm"

// Scene contains all the elements needed for rendering
type Scene struct {
	World          *geometry.World
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	SamplingConfig renderer.SamplingConfig
	Background     integrator.Background
	OutputName     string // Film filename the scene asks to be written to
}

// DefaultCameraConfig returns the camera constants shared by the scene file
// format and the built-in scenes: 20 degree vfov, 3:2 aspect, focus at 10.
func DefaultCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10,
	}
}

// NewScene creates a scene with an empty world and the default sampling
// configuration. The camera is built by Finalize.
func NewScene(cameraConfig geometry.CameraConfig) *Scene {
	sampling := renderer.DefaultSamplingConfig()
	sampling.Height = imageHeight(sampling.Width, cameraConfig.AspectRatio)

	return &Scene{
		World:          geometry.NewWorld(),
		CameraConfig:   cameraConfig,
		SamplingConfig: sampling,
		Background:     integrator.DefaultBackground(),
		OutputName:     DefaultOutputName,
	}
}

// AddGround inserts the large gray Lambertian sphere every scene stands on
func (s *Scene) AddGround() *geometry.Sphere {
	ground := s.World.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return s.World.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground)
}

// SetImageWidth sets the image width and derives the height from the camera
// aspect ratio
func (s *Scene) SetImageWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = imageHeight(width, s.CameraConfig.AspectRatio)
}

// Finalize validates the camera configuration and builds the camera
func (s *Scene) Finalize() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return err
	}
	s.Camera = geometry.NewCamera(s.CameraConfig)
	return nil
}

// NewRaytracer wires the scene into a raytracer using the scene's own
// sampling configuration
func (s *Scene) NewRaytracer() *renderer.Raytracer {
	return renderer.NewRaytracer(s.Camera, s.World, integrator.NewPathTracingIntegrator(s.Background), s.SamplingConfig)
}

// imageHeight truncates width/aspect, never returning less than one row
func imageHeight(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return width
	}
	return max(int(float64(width)/aspectRatio), 1)
}
