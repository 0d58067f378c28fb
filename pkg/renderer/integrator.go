package renderer

import (
	"math"
	"math/rand"

	"github.com/mkral/go-path-tracer/pkg/core"
)

// tMinEpsilon avoids self-intersection of scattered rays with the surface
// they just left ("shadow acne").
const tMinEpsilon = 0.001

// RayColor is the recursive Monte Carlo estimator for one path sample.
// A ray that hits nothing contributes black: the scene has no background
// term, all light comes from emissive surfaces. At a hit the result is the
// emitted radiance plus the attenuated contribution of the scattered ray,
// until the material absorbs the ray or depth runs out. Truncating at the
// depth bound loses the energy of longer paths, which is accepted.
func (rt *Raytracer) RayColor(ray core.Ray, depth int, random *rand.Rand) core.Vec3 {
	hit, isHit := rt.world.Hit(ray, tMinEpsilon, math.MaxFloat64)
	if !isHit {
		return core.Vec3{}
	}

	var emitted core.Vec3
	if emitter, isEmissive := hit.Material.(core.Emitter); isEmissive {
		emitted = emitter.Emit(ray)
	}

	if depth <= 0 {
		return emitted
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		return emitted
	}

	return emitted.Add(scatter.Attenuation.MultiplyVec(
		rt.RayColor(scatter.Scattered, depth-1, random)))
}
