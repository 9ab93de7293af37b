package systems

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/motion"
	"github.com/automoto/doomkit/tags"
)

// UpdatePlayer steps every player's motion controller, publishes jump and
// land events and picks the presentation state.
func UpdatePlayer(e *ecs.ECS) {
	rt := GetRuntime(e)
	var fallLimit float64
	if levelEntry, ok := components.Level.First(e.World); ok {
		fallLimit = float64(components.Level.Get(levelEntry).CurrentLevel.Height) + cfg.Player.CollisionHeight
	}

	tags.Player.Each(e.World, func(entry *donburi.Entry) {
		m := components.Motion.Get(entry)
		ev := m.Controller.FixedUpdate(rt.Dt)

		if ev.Jumped {
			components.Jumped.Publish(e.World, components.JumpEvent{Entry: entry, Air: ev.AirJump})
		}
		if ev.Landed {
			components.Landed.Publish(e.World, components.LandEvent{Entry: entry, FallSpeed: ev.LandSpeed})
		}

		next := playerState(m.Controller)
		if next != m.State {
			m.State = next
			m.StateTimer = 0
		} else {
			m.StateTimer += rt.Dt
		}
		components.Animation.Get(entry).SetAnimation(m.State)

		obj := components.Object.Get(entry)
		if fallLimit > 0 && obj.Y > fallLimit {
			respawnPlayer(e, entry)
		}
	})
}

func playerState(c *motion.Controller) cfg.StateID {
	vx, vy := c.Velocity()
	switch {
	case !c.Grounded() && vy < 0:
		return cfg.Jump
	case !c.Grounded():
		return cfg.Fall
	case math.Abs(vx) > 1:
		return cfg.Running
	}
	return cfg.Idle
}

// respawnPlayer puts a fallen player back on its spawn and snaps the camera.
func respawnPlayer(e *ecs.ECS, entry *donburi.Entry) {
	p := components.Player.Get(entry)
	obj := components.Object.Get(entry)
	m := components.Motion.Get(entry)
	m.Controller.Reset()
	m.Controller.Teleport(p.SpawnX-obj.W/2, p.SpawnY-obj.H)
	if camEntry, ok := components.Camera.First(e.World); ok {
		components.Camera.Get(camEntry).View.SnapToTarget()
	}
	GetRuntime(e).Logger.Info("player respawned")
}
