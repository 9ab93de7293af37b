package systems

import (
	"math"

	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/systems/factory"
	"github.com/automoto/doomkit/tags"
	"github.com/automoto/doomkit/tween"
)

// Pool names used by gameplay. Manifests may add more but these must exist
// for the built-in actions to do anything.
const (
	PoolSpark = "spark"
	PoolDust  = "dust"
	PoolCrate = "crate"
)

// SpawnActor takes an actor from the named pool, schedules its lifetime and
// announces it. Exhausted or unknown pools return nil.
func SpawnActor(e *ecs.ECS, name string, x, y, rotation float64) *factory.Actor {
	rt := GetRuntime(e)
	a := factory.AcquireActor(rt.Pools, name, x, y, rotation)
	if a == nil {
		return nil
	}
	if lt := a.Kind().Lifetime; lt > 0 {
		rt.Pools.ReleaseAfter(a, lt)
	}
	components.Spawned.Publish(e.World, components.SpawnEvent{Entry: a.Entry(), Kind: name})
	return a
}

// ReleaseActor hands a pooled entity back to its pool.
func ReleaseActor(e *ecs.ECS, entry *donburi.Entry) bool {
	if entry == nil || !entry.Valid() || !entry.HasComponent(components.Pooled) {
		return false
	}
	return GetRuntime(e).Pools.Release(components.Pooled.Get(entry).Resource)
}

// SpawnSparks fires n sparks evenly around (x, y) and returns how many the
// pool could supply.
func SpawnSparks(e *ecs.ECS, x, y float64, n int) int {
	anim := GetAnimator(e)
	spawned := 0
	for i := 0; i < n; i++ {
		rot := 2 * math.Pi * float64(i) / float64(n)
		a := SpawnActor(e, PoolSpark, x, y, rot)
		if a == nil {
			break
		}
		anim.FadeTo(a.Entry(), 0, clipDuration(cfg.StateSpark), ease.InQuad, tween.InGroup(anim.Cfg.EffectsGroup))
		spawned++
	}
	return spawned
}

// SpawnDust puffs dust left and right of a point on the ground.
func SpawnDust(e *ecs.ECS, x, y float64) {
	anim := GetAnimator(e)
	for _, rot := range []float64{math.Pi, 0} {
		a := SpawnActor(e, PoolDust, x, y-3, rot)
		if a == nil {
			return
		}
		anim.FadeTo(a.Entry(), 0, cfg.ActorKinds[PoolDust].Lifetime, ease.Linear, tween.InGroup(anim.Cfg.EffectsGroup))
	}
}

// SpawnCrate drops a crate at (x, y) with a pop-in.
func SpawnCrate(e *ecs.ECS, x, y float64) *factory.Actor {
	a := SpawnActor(e, PoolCrate, x, y, 0)
	if a == nil {
		return nil
	}
	GetAnimator(e).PopIn(a.Entry())
	return a
}

// Explode announces an explosion at a world position.
func Explode(e *ecs.ECS, x, y float64) {
	components.Exploded.Publish(e.World, components.ExplosionEvent{X: x, Y: y})
}

// UpdateSpawning turns the spawn actions into pool traffic.
func UpdateSpawning(e *ecs.ECS) {
	input := getOrCreateInput(e)
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	px, py := Target(playerEntry).Position()
	facing := components.Motion.Get(playerEntry).Controller.Facing()

	if GetAction(input, cfg.ActionSpawnSpark).JustPressed {
		SpawnSparks(e, px, py, cfg.Settings.SparkBurst)
	}
	if GetAction(input, cfg.ActionSpawnCrate).JustPressed {
		SpawnCrate(e, px+facing*cfg.Player.CollisionWidth*2, py-cfg.Player.CollisionHeight)
	}
	if GetAction(input, cfg.ActionExplode).JustPressed {
		x, y := px, py
		if camEntry, ok := components.Camera.First(e.World); ok {
			view := components.Camera.Get(camEntry).View
			x, y = view.ScreenToWorld(float64(input.CursorX), float64(input.CursorY),
				float64(cfg.C.Width), float64(cfg.C.Height))
		}
		Explode(e, x, y)
	}
}

// clipDuration is how long one pass of a clip takes.
func clipDuration(state cfg.StateID) float64 {
	def, ok := cfg.CharacterAnimations["vfx"][state]
	if !ok || def.FPS <= 0 {
		return 0
	}
	return float64(def.Last-def.First+1) / def.FPS
}
