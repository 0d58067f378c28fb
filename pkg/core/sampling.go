package core

import "math/rand"

// RandomInUnitSphere generates a random point inside the unit sphere
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		// Rejection sample from the [-1,1]³ cube
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
			Z: 2*random.Float64() - 1,
		}
		if p.LengthSquared() <= 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a random direction uniformly on the unit sphere.
// Adding it to a surface normal yields cosine-weighted hemisphere directions.
func RandomUnitVector(random *rand.Rand) Vec3 {
	for {
		p := RandomInUnitSphere(random)
		if !p.NearZero() {
			return p.Normalize()
		}
	}
}

// RandomInUnitDisk generates a random point in the unit disk (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := Vec3{X: 2*random.Float64() - 1, Y: 2*random.Float64() - 1}
		if p.Dot(p) <= 1.0 {
			return p
		}
	}
}
