package material

import (
	"math/rand"

	"github.com/mkral/go-path-tracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements cosine-weighted diffuse scattering. Always succeeds.
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	// Normal plus a uniform unit vector is cosine-weighted about the normal
	direction := hit.Normal.Add(core.RandomUnitVector(random))

	// Degenerate case: the random vector cancelled the normal
	if direction.NearZero() {
		direction = hit.Normal
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: l.Albedo,
	}, true
}
