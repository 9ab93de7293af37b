package factory

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/archetypes"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
)

// CreateSpace builds the collision grid for a level of the given pixel
// size. One extra row of cells below the level keeps actors that fall out
// indexed until they are released.
func CreateSpace(ecs *ecs.ECS, width, height int) *donburi.Entry {
	cell := max(cfg.Physics.SpaceCellSize, 1)
	entry := archetypes.Space.Spawn(ecs)
	components.Space.Set(entry, resolv.NewSpace(width, height+cell, cell, cell))
	return entry
}
