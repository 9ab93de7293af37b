package factory

import (
	"github.com/automoto/doomkit/archetypes"
	"github.com/automoto/doomkit/camera"
	"github.com/automoto/doomkit/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateCamera(ecs *ecs.ECS, view *camera.Camera) *donburi.Entry {
	entry := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(entry, &components.CameraData{View: view})
	return entry
}
