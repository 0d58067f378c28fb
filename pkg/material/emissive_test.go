package material

import (
	"math/rand"
	"testing"

	"github.com/mkral/go-path-tracer/pkg/core"
)

func TestEmissive_NeverScatters(t *testing.T) {
	emissive := NewEmissive(core.NewVec3(3, 3, 3))
	random := rand.New(rand.NewSource(42))

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	for i := 0; i < 100; i++ {
		if _, didScatter := emissive.Scatter(rayIn, hit, random); didScatter {
			t.Fatal("Emissive materials must never scatter")
		}
	}
}

func TestEmissive_ConstantEmission(t *testing.T) {
	emission := core.NewVec3(3, 2, 1)
	emissive := NewEmissive(emission)

	// Emission is independent of the incoming ray
	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)),
		core.NewRay(core.NewVec3(5, 0, 2), core.NewVec3(-1, 0, -1).Normalize()),
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
	}

	for _, ray := range rays {
		if got := emissive.Emit(ray); !got.Equals(emission) {
			t.Errorf("Expected emission %v, got %v", emission, got)
		}
	}
}

func TestEmissive_SharedInstance(t *testing.T) {
	// One material instance may back several light primitives
	shared := NewEmissive(core.NewVec3(3, 3, 3))

	var m1 core.Material = shared
	var m2 core.Material = shared
	if m1 != m2 {
		t.Error("Shared emissive material should compare equal through the interface")
	}
}
