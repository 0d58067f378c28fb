package scene

import (
	"github.com/mkral/go-path-tracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *geometry.Camera
	World        *geometry.World
	CameraConfig geometry.CameraConfig
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetWorld returns the scene's primitive collection
func (s *Scene) GetWorld() *geometry.World {
	return s.World
}
