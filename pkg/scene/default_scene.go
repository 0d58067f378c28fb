package scene

import (
	"github.com/mkral/go-path-tracer/pkg/core"
	"github.com/mkral/go-path-tracer/pkg/geometry"
	"github.com/mkral/go-path-tracer/pkg/material"
)

// NewDefaultScene creates the default scene: two metal spheres and a small
// glass sphere over a lambertian ground, lit by two spheres sharing one
// emissive material. There is no sky; the lights are the only energy source.
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(1.0, 0.5, 1.0),
		LookAt:        core.NewVec3(0.0, 0.0, -1.5),
		Up:            core.NewVec3(0.0, 1.0, 0.0),
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 0.0, // Auto-focus on LookAt
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	// Materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.04, 0.4, 0.14))
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1)
	silver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	glass := material.NewDielectric(1.5)
	light := material.NewEmissive(core.NewVec3(3.0, 3.0, 3.0))

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(-0.55, 0.0, -1.5), 0.5, gold),
		geometry.NewSphere(core.NewVec3(0.55, 0.0, -1.5), 0.5, silver),
		geometry.NewSphere(core.NewVec3(0.1, -0.3, -1.05), 0.2, glass),
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, lambertianGreen),
		// Both lights share the same emissive material
		geometry.NewSphere(core.NewVec3(-1.1, 50.0, 1.05), 20.0, light),
		geometry.NewSphere(core.NewVec3(1.1, 50.0, -1.05), 10.0, light),
	)

	return &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		World:        world,
		CameraConfig: cameraConfig,
	}
}

// NewGlowScene creates a minimal test scene: a single red lambertian sphere
// in front of the camera with one light directly above it. Useful for quick
// sanity renders and determinism checks.
func NewGlowScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0.0, 0.0, 1.0),
		LookAt:      core.NewVec3(0.0, 0.0, -1.0),
		Up:          core.NewVec3(0.0, 1.0, 0.0),
		VFov:        60.0,
		AspectRatio: 16.0 / 9.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	red := material.NewLambertian(core.NewVec3(1.0, 0.0, 0.0))
	light := material.NewEmissive(core.NewVec3(3.0, 3.0, 3.0))

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.0), 1.0, red),
		geometry.NewSphere(core.NewVec3(0.0, 4.0, -1.0), 1.5, light),
	)

	return &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		World:        world,
		CameraConfig: cameraConfig,
	}
}
