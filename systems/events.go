package systems

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
	"go.uber.org/zap"

	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/tags"
)

// RegisterEventHandlers wires gameplay events to sound, effects and the
// camera. Subscriptions live in the world and go away with it.
func RegisterEventHandlers(e *ecs.ECS) {
	components.Jumped.Subscribe(e.World, func(w donburi.World, ev components.JumpEvent) {
		onJump(e, ev)
	})
	components.Landed.Subscribe(e.World, func(w donburi.World, ev components.LandEvent) {
		onLand(e, ev)
	})
	components.Spawned.Subscribe(e.World, func(w donburi.World, ev components.SpawnEvent) {
		if ev.Kind == PoolCrate {
			PlaySFX(e, cfg.SoundSpawn)
		}
	})
	components.Released.Subscribe(e.World, func(w donburi.World, ev components.ReleaseEvent) {
		if ev.Kind == PoolCrate {
			PlaySFX(e, cfg.SoundRelease)
			SpawnDust(e, ev.X, ev.Y)
		}
	})
	components.Exploded.Subscribe(e.World, func(w donburi.World, ev components.ExplosionEvent) {
		onExplosion(e, ev)
	})
}

// UpdateEvents delivers everything published since the last tick.
func UpdateEvents(e *ecs.ECS) {
	components.Jumped.ProcessEvents(e.World)
	components.Landed.ProcessEvents(e.World)
	components.Spawned.ProcessEvents(e.World)
	components.Released.ProcessEvents(e.World)
	components.Exploded.ProcessEvents(e.World)
}

func onJump(e *ecs.ECS, ev components.JumpEvent) {
	if ev.Entry == nil || !ev.Entry.Valid() {
		return
	}
	PlaySFX(e, cfg.SoundJump)
	GetAnimator(e).SquashStretch(ev.Entry, cfg.SquashStretch.JumpScaleX, cfg.SquashStretch.JumpScaleY)
	if !ev.Air {
		x, y := feet(ev.Entry)
		SpawnDust(e, x, y)
	}
}

func onLand(e *ecs.ECS, ev components.LandEvent) {
	if ev.Entry == nil || !ev.Entry.Valid() {
		return
	}
	PlaySFX(e, cfg.SoundLand)
	GetAnimator(e).SquashStretch(ev.Entry, cfg.SquashStretch.LandScaleX, cfg.SquashStretch.LandScaleY)
	x, y := feet(ev.Entry)
	SpawnDust(e, x, y)

	if ev.FallSpeed < cfg.ScreenShake.LandMinFallSpeed || !GetOrCreateSettings(e).ShakeEnabled {
		return
	}
	if cam := GetCamera(e); cam != nil {
		cam.View.Shake(cfg.ScreenShake.LandIntensity, cfg.ScreenShake.LandDuration)
	}
}

func onExplosion(e *ecs.ECS, ev components.ExplosionEvent) {
	PlaySFX(e, cfg.SoundExplosion)
	SpawnSparks(e, ev.X, ev.Y, cfg.Settings.SparkBurst*2)
	RattleCrates(e, ev.X, ev.Y)

	cam := GetCamera(e)
	if cam == nil || !GetOrCreateSettings(e).ShakeEnabled {
		return
	}
	// Shake is felt at the player, falling off with distance.
	lx, ly := cam.View.FollowPosition()
	if playerEntry, ok := tags.Player.First(e.World); ok {
		lx, ly = Target(playerEntry).Position()
	}
	h := cam.View.ShakeByDistance(
		dmath.Vec2{X: ev.X, Y: ev.Y},
		dmath.Vec2{X: lx, Y: ly},
		cfg.ScreenShake.ExplosionRadius,
		cfg.ScreenShake.ExplosionIntensity,
		cfg.ScreenShake.ExplosionDuration,
	)
	if h == nil {
		GetRuntime(e).Logger.Debug("explosion out of range",
			zap.Float64("x", ev.X), zap.Float64("y", ev.Y))
	}
}

// RattleCrates shakes every active crate within half the explosion radius,
// harder the closer it is. It returns how many crates were hit.
func RattleCrates(e *ecs.ECS, x, y float64) int {
	anim := GetAnimator(e)
	radius := cfg.ScreenShake.ExplosionRadius / 2
	if radius <= 0 {
		return 0
	}
	var hit []*donburi.Entry
	tags.Actor.Each(e.World, func(entry *donburi.Entry) {
		if !components.Pooled.Get(entry).Active {
			return
		}
		obj := components.Object.Get(entry)
		if !obj.HasTags(tags.ResolvCrate) {
			return
		}
		if math.Hypot(obj.X+obj.W/2-x, obj.Y+obj.H/2-y) < radius {
			hit = append(hit, entry)
		}
	})
	for _, entry := range hit {
		obj := components.Object.Get(entry)
		d := math.Hypot(obj.X+obj.W/2-x, obj.Y+obj.H/2-y)
		anim.Rattle(entry, cfg.ScreenShake.ExplosionIntensity*(1-d/radius), cfg.ScreenShake.ExplosionDuration)
	}
	return len(hit)
}

// feet is the bottom center of an entity's collision box.
func feet(entry *donburi.Entry) (float64, float64) {
	obj := components.Object.Get(entry)
	return obj.X + obj.W/2, obj.Y + obj.H
}
