package factory

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/archetypes"
	"github.com/automoto/doomkit/components"
	"github.com/automoto/doomkit/level"
	"github.com/automoto/doomkit/tags"
)

// CreateWall turns one merged run of solid tiles into a static collider.
func CreateWall(ecs *ecs.ECS, r level.Rect) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)

	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	obj.Data = wall
	components.Object.SetValue(wall, components.ObjectData{Object: obj})

	if space, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(space).Add(obj)
	}
	return wall
}
