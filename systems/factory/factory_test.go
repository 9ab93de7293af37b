package factory

import (
	"testing"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/level"
	"github.com/automoto/doomkit/pool"
	"github.com/automoto/doomkit/tags"
	"github.com/automoto/doomkit/tween"
)

func newTestWorld(t *testing.T) (*ecs.ECS, *resolv.Space) {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	spaceEntry := CreateSpace(e, 320, 240)
	return e, components.Space.Get(spaceEntry)
}

func newBox(space *resolv.Space, x, y, w, h float64, objTags ...string) *resolv.Object {
	obj := resolv.NewObject(x, y, w, h, objTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	space.Add(obj)
	return obj
}

func TestBodyStopsAgainstWall(t *testing.T) {
	e, space := newTestWorld(t)
	CreateWall(e, level.Rect{X: 100, Y: 0, W: 16, H: 100})
	obj := newBox(space, 50, 50, 10, 10)

	body := NewObjectBody(obj)
	blockedX, blockedY := body.Move(45, 0)
	if !blockedX || blockedY {
		t.Fatalf("blocked = %v/%v, want true/false", blockedX, blockedY)
	}
	if obj.X+obj.W > 100 {
		t.Errorf("right edge at %v, went into the wall at 100", obj.X+obj.W)
	}
	if obj.X < 85 {
		t.Errorf("stopped at %v, short of the wall", obj.X)
	}
}

func TestBodyMovesFreelyWithoutSpace(t *testing.T) {
	obj := resolv.NewObject(0, 0, 4, 4)
	body := NewObjectBody(obj)

	if bx, by := body.Move(3, -2); bx || by {
		t.Error("detached body reported a collision")
	}
	if x, y := body.Position(); x != 3 || y != -2 {
		t.Errorf("position = (%v, %v), want (3, -2)", x, y)
	}
}

func TestBodyIgnoresNonBlockingTags(t *testing.T) {
	_, space := newTestWorld(t)
	newBox(space, 30, 0, 10, 40, tags.ResolvActor)
	obj := newBox(space, 0, 10, 10, 10)

	if bx, _ := NewObjectBody(obj).Move(40, 0); bx {
		t.Error("body blocked by a non-solid actor")
	}
	if obj.X != 40 {
		t.Errorf("x = %v, want 40", obj.X)
	}
}

func TestProbeFindsFloorOnly(t *testing.T) {
	e, space := newTestWorld(t)
	CreateWall(e, level.Rect{X: 0, Y: 100, W: 200, H: 16})
	CreateWall(e, level.Rect{X: 60, Y: 0, W: 16, H: 100})

	standing := newBox(space, 10, 90, 10, 10)
	if !NewObjectProbe(standing, 1).OnGround() {
		t.Error("object resting on the floor is not grounded")
	}

	beside := newBox(space, 50, 40, 10, 10)
	if NewObjectProbe(beside, 1).OnGround() {
		t.Error("wall beside the object counted as ground")
	}

	falling := newBox(space, 10, 60, 10, 10)
	if NewObjectProbe(falling, 1).OnGround() {
		t.Error("object in the air is grounded")
	}
}

func newTestRegistry(t *testing.T, e *ecs.ECS, space *resolv.Space, tweens *tween.Coordinator, defs ...cfg.PoolDef) *pool.Registry {
	t.Helper()
	reg := pool.NewRegistry(cfg.PoolConfig{
		DefaultInitialSize: 1,
		DefaultMaxSize:     4,
		DefaultAutoExpand:  true,
		PreloadBatch:       4,
		ShrinkInterval:     30,
		KeepFloor:          1,
	}, nil)
	if err := CreatePools(e, reg, defs, space, tweens); err != nil {
		t.Fatalf("CreatePools: %v", err)
	}
	return reg
}

func TestCreatePoolsRejectsUnknownKind(t *testing.T) {
	e, space := newTestWorld(t)
	reg := pool.NewRegistry(cfg.Pool, nil)
	err := CreatePools(e, reg, []cfg.PoolDef{{Name: "ghost", Template: "ghost"}}, space, nil)
	if err == nil {
		t.Fatal("unknown kind accepted")
	}
	if reg.Has("ghost") {
		t.Error("pool registered despite the error")
	}
}

func TestActorLifecycle(t *testing.T) {
	e, space := newTestWorld(t)
	tweens := tween.NewCoordinator(nil)
	reg := newTestRegistry(t, e, space, tweens, cfg.PoolDef{Name: "crate", Template: "crate"})

	a := AcquireActor(reg, "crate", 100, 50, 0)
	if a == nil {
		t.Fatal("acquire returned nil")
	}
	obj := components.Object.Get(a.Entry())
	if !a.Active() || obj.Space == nil {
		t.Fatal("solid actor not active in the space")
	}
	if x, y := a.Position(); x != 100 || y != 50 {
		t.Errorf("center = (%v, %v), want (100, 50)", x, y)
	}
	if components.Pooled.Get(a.Entry()).Kind != "crate" {
		t.Error("pooled kind not recorded")
	}

	alpha := 1.0
	h := tweens.Play(tween.Value(1, 0, 1, nil, func(v float64) { alpha = v }), tween.WithTarget(a))

	if !reg.Release(a) {
		t.Fatal("release refused")
	}
	if a.Active() || a.Alive() {
		t.Error("released actor still active")
	}
	if obj.Space != nil {
		t.Error("released crate still in the collision space")
	}
	if h.Running() {
		t.Error("tween on a released actor still running")
	}
	tweens.Update(0.5)
	if alpha != 1 {
		t.Errorf("killed tween wrote %v", alpha)
	}
	if !a.Entry().Valid() {
		t.Error("idle actor removed from the world")
	}
}

func TestReacquireResetsState(t *testing.T) {
	e, space := newTestWorld(t)
	reg := newTestRegistry(t, e, space, nil, cfg.PoolDef{Name: "dust", Template: "dust", Max: 1})

	a := AcquireActor(reg, "dust", 10, 10, 0)
	tr := components.Transform.Get(a.Entry())
	tr.Alpha, tr.ScaleX = 0.2, 3
	components.Pooled.Get(a.Entry()).Age = 5
	components.Pooled.Get(a.Entry()).Parent = a.Entry()
	reg.Release(a)

	b := AcquireActor(reg, "dust", 20, 20, 0)
	if b != a {
		t.Fatal("pool built a new actor instead of reusing the idle one")
	}
	tr = components.Transform.Get(b.Entry())
	if *tr != components.DefaultTransform() {
		t.Errorf("transform = %+v, want rest pose", *tr)
	}
	p := components.Pooled.Get(b.Entry())
	if p.Age != 0 || p.Parent != nil {
		t.Errorf("age = %v parent = %v, want 0 nil", p.Age, p.Parent)
	}
}

func TestExhaustedPoolReturnsNil(t *testing.T) {
	e, space := newTestWorld(t)
	no := false
	reg := newTestRegistry(t, e, space, nil, cfg.PoolDef{Name: "crate", Template: "crate", Max: 1, AutoExpand: &no})

	if AcquireActor(reg, "crate", 0, 0, 0) == nil {
		t.Fatal("first acquire failed")
	}
	if AcquireActor(reg, "crate", 0, 0, 0) != nil {
		t.Error("acquire past max size succeeded")
	}
	if AcquireActor(reg, "missing", 0, 0, 0) != nil {
		t.Error("acquire from unknown pool succeeded")
	}
}

func TestDestroyRemovesEntity(t *testing.T) {
	e, space := newTestWorld(t)
	reg := newTestRegistry(t, e, space, nil, cfg.PoolDef{Name: "crate", Template: "crate"})
	a := AcquireActor(reg, "crate", 40, 40, 0)
	obj := components.Object.Get(a.Entry()).Object

	reg.Clear()
	if a.Entry().Valid() {
		t.Error("entity survived pool destruction")
	}
	if obj.Space != nil {
		t.Error("object survived pool destruction")
	}
}
