package core

import "math/rand"

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float64  // Parameter t along the ray
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at the intersection, facing the incoming ray
	FrontFace bool     // Whether the ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray continuing the light path
	Attenuation Vec3 // Color attenuation applied to light carried back along the path
}

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter returns the scattered ray and attenuation for an incoming ray.
	// Returns false when the surface absorbs the ray.
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit(rayIn Ray) Vec3
}

// Hittable is the shared capability of scene primitives
type Hittable interface {
	// Hit tests the ray against the primitive within the open range (tMin, tMax).
	// Returns false when there is no intersection in range.
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}
