package geometry

import (
	"math"
	"math/rand"

	"github.com/mkral/go-path-tracer/pkg/core"
)

// CameraConfig holds the parameters needed to construct a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction hint; must not be parallel to the view direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens aperture diameter (0 = pinhole)
	FocusDistance float64   // Distance to the focus plane (0 = focus on LookAt)
}

// MergeCameraConfig overlays non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	if override.Center != (core.Vec3{}) {
		merged.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		merged.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		merged.Up = override.Up
	}
	if override.VFov != 0 {
		merged.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		merged.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		merged.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		merged.FocusDistance = override.FocusDistance
	}
	return merged
}

// Camera maps normalized image-plane coordinates to world-space rays using
// a thin-lens model for depth of field. Immutable after construction.
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration.
// A degenerate configuration (LookAt parallel to Up) is the caller's fault.
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	lowerLeftCorner := config.Center.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * focusDistance),
		vertical:        v.Multiply(2 * halfHeight * focusDistance),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay generates a ray for normalized image coordinates (s, t) in [0,1].
// With a non-zero aperture the origin is jittered within the lens disk and
// the ray still passes through the target point on the focus plane.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Forward returns the camera's view direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Multiply(-1)
}
