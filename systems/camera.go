package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/components"
)

// UpdateCamera runs after every actor has moved.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	camera.View.Update(GetRuntime(e).Dt)
	camera.Position.X, camera.Position.Y = camera.View.Position()
}

// GetCamera returns the camera of the world, if any.
func GetCamera(e *ecs.ECS) *components.CameraData {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return nil
	}
	return components.Camera.Get(cameraEntry)
}
