package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewDefaultScene creates the three-sphere scene: glass, diffuse and metal
// spheres side by side on the ground
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)
	s.OutputName = "default.ppm"
	s.AddGround()

	glass := s.World.AddMaterial(material.NewDielectric(1.5))
	diffuse := s.World.AddMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	metal := s.World.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	s.World.AddSphere(core.NewVec3(0, 1, 0), 1.0, glass)
	s.World.AddSphere(core.NewVec3(-4, 1, 0), 1.0, diffuse)
	s.World.AddSphere(core.NewVec3(4, 1, 0), 1.0, metal)

	s.Camera = geometry.NewCamera(cameraConfig)
	return s
}
