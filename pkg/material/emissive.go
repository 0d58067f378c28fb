package material

import (
	"math/rand"

	"github.com/mkral/go-path-tracer/pkg/core"
)

// Emissive represents a light-emitting material (a diffuse light).
// One instance is typically shared by several light primitives.
type Emissive struct {
	Emission core.Vec3 // Emitted radiance, independent of angle and position
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter never succeeds; lights absorb incoming rays and only emit
func (e *Emissive) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emit returns the constant emitted radiance
func (e *Emissive) Emit(rayIn core.Ray) core.Vec3 {
	return e.Emission
}
