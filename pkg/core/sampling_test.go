package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomInUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitSphere(random)
		if p.Length() > 1.0 {
			t.Fatalf("Point %v outside unit sphere (length %f)", p, p.Length())
		}
	}
}

func TestRandomUnitVector(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	const tolerance = 1e-12
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(random)
		if math.Abs(v.Length()-1.0) > tolerance {
			t.Fatalf("Vector %v should have unit length, got %f", v, v.Length())
		}
	}
}

func TestRandomUnitVector_CoversSphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	// Directions should land in every octant over enough draws
	var octants [8]int
	for i := 0; i < 4000; i++ {
		v := RandomUnitVector(random)
		idx := 0
		if v.X > 0 {
			idx |= 1
		}
		if v.Y > 0 {
			idx |= 2
		}
		if v.Z > 0 {
			idx |= 4
		}
		octants[idx]++
	}

	for i, count := range octants {
		if count == 0 {
			t.Errorf("Octant %d never sampled", i)
		}
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(random)
		if p.Z != 0 {
			t.Fatalf("Disk point %v should have Z=0", p)
		}
		if p.Length() > 1.0 {
			t.Fatalf("Point %v outside unit disk (length %f)", p, p.Length())
		}
	}
}
