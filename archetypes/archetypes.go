package archetypes

import (
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
		components.Motion,
		components.Animation,
		components.Transform,
	)
	Space = newArchetype(
		components.Space,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
	)
	Level = newArchetype(
		components.Level,
	)
	Camera = newArchetype(
		components.Camera,
	)
	Runtime = newArchetype(
		components.Runtime,
	)
	Pause = newArchetype(
		components.Pause,
		components.Transform,
	)
	// PooledActor entities are built once by a pool template and recycled.
	PooledActor = newArchetype(
		tags.Actor,
		components.Pooled,
		components.Object,
		components.Physics,
		components.Animation,
		components.Transform,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
