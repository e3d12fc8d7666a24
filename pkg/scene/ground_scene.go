package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// NewGroundScene creates a scene with nothing but the ground sphere, viewed
// along -z from just above it. The horizon splits the frame.
func NewGroundScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(0, 1, 0),
		LookAt:        core.NewVec3(0, 1, -1),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0,
		FocusDistance: 0, // Auto-calculate focus distance
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)
	s.OutputName = "ground.ppm"
	s.AddGround()

	s.Camera = geometry.NewCamera(cameraConfig)
	return s
}
