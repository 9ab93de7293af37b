package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/camera"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
)

// GetRuntime returns the session services stored in the world. Systems run
// only inside an initialized session, so a missing runtime is a wiring bug.
func GetRuntime(e *ecs.ECS) *components.RuntimeData {
	entry, ok := components.Runtime.First(e.World)
	if !ok {
		panic("systems: world has no runtime")
	}
	return components.Runtime.Get(entry)
}

var animatorComponent = donburi.NewComponentType[Animator]()

// GetAnimator returns the session's animator.
func GetAnimator(e *ecs.ECS) *Animator {
	entry, ok := animatorComponent.First(e.World)
	if !ok {
		panic("systems: world has no animator")
	}
	return animatorComponent.Get(entry)
}

// AttachAnimator stores a in the world.
func AttachAnimator(e *ecs.ECS, a *Animator) {
	entry := e.World.Entry(e.World.Create(animatorComponent))
	animatorComponent.Set(entry, a)
}

// UpdateClock counts fixed ticks. It runs first.
func UpdateClock(e *ecs.ECS) {
	rt := GetRuntime(e)
	if rt.Dt <= 0 {
		rt.Dt = cfg.FixedDelta()
	}
	rt.Ticks++
}

// EntityTarget is a weak reference to an entity for tweens and the camera.
// It dies with the entity.
type EntityTarget struct {
	World  donburi.World
	Entity donburi.Entity
}

func (t EntityTarget) Alive() bool {
	return t.World != nil && t.World.Valid(t.Entity)
}

// Position is the center of the entity's collision box.
func (t EntityTarget) Position() (float64, float64) {
	entry := t.World.Entry(t.Entity)
	obj := components.Object.Get(entry)
	return obj.X + obj.W/2, obj.Y + obj.H/2
}

// Target is the weak reference tweens should hold for entry. Pooled
// entities answer with their pool handle, which dies on release even
// though the entity itself survives.
func Target(entry *donburi.Entry) camera.Target {
	if entry.HasComponent(components.Pooled) {
		if t, ok := components.Pooled.Get(entry).Resource.(camera.Target); ok {
			return t
		}
	}
	return EntityTarget{World: entry.World, Entity: entry.Entity()}
}
