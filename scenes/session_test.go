package scenes

import (
	"errors"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/automoto/doomkit/assets"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/systems"
	"github.com/automoto/doomkit/tags"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(nil, cfg.DefaultPools, assets.MustLoadLevels(), 0)
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Teardown)
	return s
}

func TestSessionInit(t *testing.T) {
	s := newTestSession(t)
	rt := s.Runtime()

	for _, name := range []string{systems.PoolSpark, systems.PoolDust, systems.PoolCrate} {
		if !rt.Pools.Has(name) {
			t.Errorf("pool %q missing", name)
		}
	}
	if _, ok := tags.Player.First(s.ECS.World); !ok {
		t.Fatal("no player")
	}
	cam := systems.GetCamera(s.ECS)
	if cam == nil || cam.View.Target() == nil || !cam.View.Target().Alive() {
		t.Fatal("camera has no live target")
	}

	lvl := components.Level.Get(mustFirst(t, s, components.Level)).CurrentLevel
	st, _ := rt.Pools.Stats(systems.PoolCrate)
	if st.Active != len(lvl.CrateSpawns) {
		t.Errorf("%d crates active, level places %d", st.Active, len(lvl.CrateSpawns))
	}
}

func mustFirst[T any](t *testing.T, s *Session, c *donburi.ComponentType[T]) *donburi.Entry {
	t.Helper()
	entry, ok := c.First(s.ECS.World)
	if !ok {
		t.Fatalf("no %T in the world", *new(T))
	}
	return entry
}

func TestSessionTeardownKillsTweensBeforeClearingPools(t *testing.T) {
	s := newTestSession(t)
	rt := s.Runtime()
	anim := systems.GetAnimator(s.ECS)

	if n := systems.SpawnSparks(s.ECS, 100, 100, 4); n != 4 {
		t.Fatalf("spawned %d sparks", n)
	}
	player, _ := tags.Player.First(s.ECS.World)

	poolsAtKill := -1
	anim.Pulse(player, -1).OnKill(func() {
		poolsAtKill = len(rt.Pools.Names())
	})
	if rt.Tweens.ActiveCount() == 0 {
		t.Fatal("nothing animating before teardown")
	}

	s.Teardown()

	if poolsAtKill <= 0 {
		t.Errorf("kill callback saw %d pools, want them still registered", poolsAtKill)
	}
	if n := rt.Tweens.ActiveCount(); n != 0 {
		t.Errorf("%d tweens survived teardown", n)
	}
	if names := rt.Pools.Names(); len(names) != 0 {
		t.Errorf("pools survived teardown: %v", names)
	}
	left := 0
	tags.Actor.Each(s.ECS.World, func(*donburi.Entry) { left++ })
	if left != 0 {
		t.Errorf("%d pooled entities left in the world", left)
	}
}

func TestSessionTeardownIsIdempotent(t *testing.T) {
	s := newTestSession(t)
	s.Teardown()
	s.Teardown()
	s.Update()
	if s.RestartRequested() {
		t.Error("closed session requested a restart")
	}
}

func TestSessionInitFailsOnUnknownTemplate(t *testing.T) {
	defs := []cfg.PoolDef{{Name: "ghost", Template: "ghost"}}
	s := NewSession(nil, defs, assets.MustLoadLevels(), 0)
	if err := s.Init(); err == nil {
		t.Fatal("unknown template accepted")
	}
	if s.Runtime().Tweens.ActiveCount() != 0 || len(s.Runtime().Pools.Names()) != 0 {
		t.Error("failed session left services running")
	}
}

func TestSessionWithoutLevels(t *testing.T) {
	s := NewSession(nil, nil, nil, 0)
	if err := s.Init(); !errors.Is(err, ErrNoLevels) {
		t.Errorf("err = %v, want ErrNoLevels", err)
	}
	s.Teardown()
}

func TestSessionPauseHoldsCameraAndEffects(t *testing.T) {
	s := newTestSession(t)
	rt := s.Runtime()
	cam := systems.GetCamera(s.ECS)
	player, _ := tags.Player.First(s.ECS.World)

	shake := cam.View.Shake(5, 0.5)
	pulse := systems.GetAnimator(s.ECS).Pulse(player, -1)
	if shake == nil || !shake.Running() {
		t.Fatal("camera shake did not start")
	}

	systems.SetPaused(s.ECS, true)
	for i := 0; i < 60; i++ {
		rt.Tweens.Update(rt.Dt)
	}
	if !shake.Paused() || !pulse.Paused() {
		t.Errorf("paused = %v/%v, want camera and effects held", shake.Paused(), pulse.Paused())
	}
	if !shake.Running() {
		t.Error("camera shake finished while paused")
	}

	systems.SetPaused(s.ECS, false)
	if shake.Paused() || pulse.Paused() {
		t.Error("resume left gameplay tweens paused")
	}
}
