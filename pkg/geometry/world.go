package geometry

import (
	"github.com/mkral/go-path-tracer/pkg/core"
)

// World is an ordered collection of primitives searched by linear scan.
// Small scenes don't need an acceleration structure.
type World struct {
	Objects []core.Hittable
}

// NewWorld creates a world from the given primitives
func NewWorld(objects ...core.Hittable) *World {
	return &World{Objects: objects}
}

// Add appends a primitive to the world
func (w *World) Add(object core.Hittable) {
	w.Objects = append(w.Objects, object)
}

// Hit returns the nearest intersection in (tMin, tMax) across all primitives.
// Each test shrinks tMax to the closest hit found so far, so the returned
// record is the globally nearest hit regardless of insertion order.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range w.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
