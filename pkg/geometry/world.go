package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// World is the set of shapes in a scene together with the material table
// they index into. It is built once and then only read, so any number of
// render workers may query it concurrently without locking.
type World struct {
	shapes    []Shape
	materials []material.Material
	bvh       *BVH
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// AddMaterial stores m in the material table and returns its ID
func (w *World) AddMaterial(m material.Material) material.ID {
	w.materials = append(w.materials, m)
	return material.ID(len(w.materials) - 1)
}

// Material returns the material stored under id
func (w *World) Material(id material.ID) *material.Material {
	return &w.materials[id]
}

// Add appends shapes to the world. Any BVH built earlier is discarded.
func (w *World) Add(shapes ...Shape) {
	w.shapes = append(w.shapes, shapes...)
	w.bvh = nil
}

// AddSphere is a convenience for Add(NewSphere(...))
func (w *World) AddSphere(center core.Vec3, radius float64, materialID material.ID) *Sphere {
	sphere := NewSphere(center, radius, materialID)
	w.Add(sphere)
	return sphere
}

// Shapes returns the shapes in insertion order
func (w *World) Shapes() []Shape {
	return w.shapes
}

// MaterialCount returns the number of materials in the table
func (w *World) MaterialCount() int {
	return len(w.materials)
}

// BuildBVH builds an acceleration structure over the current shapes. Hit
// results are unchanged; only the cost of a query goes down.
func (w *World) BuildBVH() {
	w.bvh = NewBVH(w.shapes)
}

// HasBVH reports whether queries go through a BVH
func (w *World) HasBVH() bool {
	return w.bvh != nil
}

// Hit returns the nearest intersection strictly inside (tMin, tMax) across
// all shapes, with its material resolved from the table.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord

	if w.bvh != nil {
		closestHit, _ = w.bvh.Hit(ray, tMin, tMax)
	} else {
		closestSoFar := tMax
		for _, shape := range w.shapes {
			if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
				closestSoFar = hit.T
				closestHit = hit
			}
		}
	}

	if closestHit == nil {
		return nil, false
	}
	closestHit.Material = w.Material(closestHit.MaterialID)
	return closestHit, true
}
