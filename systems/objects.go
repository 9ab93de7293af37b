package systems

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/systems/factory"
	"github.com/automoto/doomkit/tags"
)

var actorBlocks = []string{tags.ResolvSolid, tags.ResolvCrate}

// UpdateObjects integrates the ballistic motion of active pooled actors.
// Solid actors collide with level geometry and each other; the rest fly
// free.
func UpdateObjects(ecs *ecs.ECS) {
	dt := GetRuntime(ecs).Dt
	tags.Actor.Each(ecs.World, func(e *donburi.Entry) {
		p := components.Pooled.Get(e)
		if !p.Active {
			return
		}
		p.Age += dt

		ph := components.Physics.Get(e)
		obj := components.Object.Get(e).Object

		ph.SpeedY = math.Min(ph.SpeedY+ph.Gravity*dt, cfg.Physics.MaxFallSpeed)
		if ph.OnGround && ph.Friction > 0 {
			ph.SpeedX = approach(ph.SpeedX, 0, ph.Friction*dt)
		}

		body := factory.ObjectBody{Obj: obj, Blocks: actorBlocks}
		blockedX, blockedY := body.Move(ph.SpeedX*dt, ph.SpeedY*dt)
		if blockedX {
			ph.SpeedX = 0
		}
		ph.OnGround = false
		if blockedY {
			if ph.SpeedY > 0 {
				ph.OnGround = true
			}
			ph.SpeedY = 0
		}
	})
}

func approach(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}
