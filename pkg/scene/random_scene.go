package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// randomGridExtent is the half-width of the grid of small spheres
const randomGridExtent = 11

// NewRandomScene creates the cover scene: a 22x22 grid of small randomly
// placed spheres around the three large ones. The layout depends only on seed.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig)
	s.OutputName = "random.ppm"
	s.AddGround()

	random := rand.New(rand.NewSource(seed))
	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	// One glass material is shared by every small glass sphere
	glass := s.World.AddMaterial(material.NewDielectric(1.5))
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -randomGridExtent; a < randomGridExtent; a++ {
		for b := -randomGridExtent; b < randomGridExtent; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep the space in front of the large metal sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.8:
				albedo := randomColor(0, 1).MultiplyVec(randomColor(0, 1))
				s.World.AddSphere(center, 0.2, s.World.AddMaterial(material.NewLambertian(albedo)))
			case chooseMaterial < 0.95:
				albedo := randomColor(0.5, 1)
				fuzz := 0.5 * random.Float64()
				s.World.AddSphere(center, 0.2, s.World.AddMaterial(material.NewMetal(albedo, fuzz)))
			default:
				s.World.AddSphere(center, 0.2, glass)
			}
		}
	}

	s.World.AddSphere(core.NewVec3(0, 1, 0), 1.0, glass)
	s.World.AddSphere(core.NewVec3(-4, 1, 0), 1.0, s.World.AddMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	s.World.AddSphere(core.NewVec3(4, 1, 0), 1.0, s.World.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	// Several hundred spheres: worth a BVH
	s.World.BuildBVH()

	s.Camera = geometry.NewCamera(cameraConfig)
	return s
}
