package material

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Kind identifies which scattering model a Material uses
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

// String returns the scene-description name of the kind
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ID is the index of a material in a world's material table
type ID int

// Material is a closed variant over the three scattering models. Only the
// fields of the active Kind are meaningful. Materials are immutable values and
// safe to share between goroutines.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and metal base color
	Fuzz            float64   // Metal only, in [0, 1]
	RefractiveIndex float64   // Dielectric only
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point      core.Vec3 // Point of intersection
	Normal     core.Vec3 // Unit normal, always opposing the incoming ray
	T          float64   // Parameter t along the ray
	FrontFace  bool      // Whether ray hit the outer surface
	MaterialID ID        // Index into the world's material table
	Material   *Material // Resolved by the world; never owned by the record
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Scatter dispatches to the scattering model of m. A false result means the
// ray was absorbed.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return scatterLambertian(m, hit, sampler)
	case KindMetal:
		return scatterMetal(m, rayIn, hit, sampler)
	case KindDielectric:
		return scatterDielectric(m, rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}
