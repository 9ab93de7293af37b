package tween

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

type fakeTarget struct{ alive bool }

func (f *fakeTarget) Alive() bool { return f.alive }

type point struct{ x, y float64 }

func (p *point) channel() Channel {
	return Channel{
		Get: func() []float64 { return []float64{p.x, p.y} },
		Set: func(v []float64) { p.x, p.y = v[0], v[1] },
	}
}

func run(c *Coordinator, seconds, step float64) {
	for t := 0.0; t < seconds-1e-9; t += step {
		c.Update(step)
	}
}

func TestToReachesTarget(t *testing.T) {
	c := NewCoordinator(nil)
	p := &point{x: 0, y: 10}

	h := c.Play(To(p.channel(), 1, ease.Linear, 100, 20))
	c.Update(0.5)
	if !approxEqual(p.x, 50, 0.01) || !approxEqual(p.y, 15, 0.01) {
		t.Errorf("halfway = (%f, %f), want ~(50, 15)", p.x, p.y)
	}
	c.Update(0.5)
	if p.x != 100 || p.y != 20 {
		t.Errorf("end = (%f, %f), want (100, 20)", p.x, p.y)
	}
	if h.State() != Completed {
		t.Errorf("state = %v, want completed", h.State())
	}
}

func TestToCapturesStartLazily(t *testing.T) {
	c := NewCoordinator(nil)
	p := &point{}

	c.Play(To(p.channel(), 1, ease.Linear, 10, 0))
	p.x = 5 // moved before the first update
	c.Update(0.5)
	if !approxEqual(p.x, 7.5, 0.01) {
		t.Errorf("x = %f, want ~7.5", p.x)
	}
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	c := NewCoordinator(nil)
	var v float64

	h := c.Play(Value(0, 3, 0, nil, func(x float64) { v = x }))
	c.Update(0)
	if v != 3 || h.State() != Completed {
		t.Errorf("v = %f state = %v, want 3 completed", v, h.State())
	}
}

func TestSequenceCarriesLeftoverTime(t *testing.T) {
	c := NewCoordinator(nil)
	var a, b float64

	c.Play(Sequence(
		Value(0, 1, 0.5, ease.Linear, func(x float64) { a = x }),
		Value(0, 1, 0.5, ease.Linear, func(x float64) { b = x }),
	))
	c.Update(0.75)
	if a != 1 || !approxEqual(b, 0.5, 0.01) {
		t.Errorf("a = %f b = %f, want 1 and ~0.5", a, b)
	}
}

func TestParallelEndsWithLongestChild(t *testing.T) {
	c := NewCoordinator(nil)
	var short, long float64

	h := c.Play(Parallel(
		Value(0, 1, 0.2, ease.Linear, func(x float64) { short = x }),
		Value(0, 1, 0.6, ease.Linear, func(x float64) { long = x }),
	))
	c.Update(0.4)
	if short != 1 || h.State() != Running {
		t.Errorf("short = %f state = %v", short, h.State())
	}
	c.Update(0.4)
	if long != 1 || h.State() != Completed {
		t.Errorf("long = %f state = %v", long, h.State())
	}
}

func TestDelayAndCall(t *testing.T) {
	c := NewCoordinator(nil)
	calls := 0

	c.Play(Sequence(Delay(0.3), Call(func() { calls++ })))
	c.Update(0.2)
	if calls != 0 {
		t.Fatal("call ran before the delay elapsed")
	}
	c.Update(0.2)
	c.Update(0.2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRepeatCountsLaps(t *testing.T) {
	c := NewCoordinator(nil)
	laps := 0

	h := c.Play(Repeat(Sequence(Delay(0.1), Call(func() { laps++ })), 3))
	run(c, 1, 0.05)
	if laps != 3 || h.State() != Completed {
		t.Errorf("laps = %d state = %v, want 3 completed", laps, h.State())
	}
}

func TestRepeatForeverUntilKilled(t *testing.T) {
	c := NewCoordinator(nil)
	laps := 0

	h := c.Play(Repeat(Sequence(Delay(0.1), Call(func() { laps++ })), -1))
	run(c, 1, 0.05)
	if !h.Running() || laps < 9 {
		t.Fatalf("running=%v laps=%d", h.Running(), laps)
	}
	h.Kill()
	before := laps
	run(c, 1, 0.05)
	if laps != before {
		t.Error("killed repeat kept running")
	}
}

func TestCompletionCallbackRunsOnce(t *testing.T) {
	c := NewCoordinator(nil)
	completed, killed := 0, 0

	h := c.Play(Delay(0.1)).
		OnComplete(func() { completed++ }).
		OnKill(func() { killed++ })
	c.Update(0.2)
	c.Update(0.2)
	h.Kill()
	h.Kill()

	if completed != 1 || killed != 0 {
		t.Errorf("completed = %d killed = %d, want 1 and 0", completed, killed)
	}
	if h.State() != Completed {
		t.Errorf("kill after completion changed state to %v", h.State())
	}
}

func TestKillIsIdempotent(t *testing.T) {
	c := NewCoordinator(nil)
	killed := 0

	h := c.Play(Delay(1)).OnKill(func() { killed++ })
	h.Kill()
	h.Kill()
	c.Update(2)
	if killed != 1 || h.State() != Killed {
		t.Errorf("killed = %d state = %v", killed, h.State())
	}
	if c.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", c.ActiveCount())
	}
}

func TestGroupPrunedWithLastMember(t *testing.T) {
	c := NewCoordinator(nil)

	h := c.Play(Delay(1), InGroup("Hit"))
	if c.GroupSize("Hit") != 1 || !c.HasGroup("Hit") {
		t.Fatal("group not registered")
	}
	h.Kill()
	if c.GroupSize("Hit") != 0 || c.HasGroup("Hit") {
		t.Error("empty group was not pruned")
	}

	c.Play(Delay(0.1), InGroup("UI"))
	c.Update(0.2)
	if c.HasGroup("UI") {
		t.Error("group not pruned after natural completion")
	}
}

func TestKillGroupOnlyTouchesMembers(t *testing.T) {
	c := NewCoordinator(nil)
	var order []int

	c.Play(Delay(1), InGroup("Hit")).OnKill(func() { order = append(order, 1) })
	c.Play(Delay(1), InGroup("Hit")).OnKill(func() { order = append(order, 2) })
	other := c.Play(Delay(1), InGroup("UI"))

	if n := c.KillGroup("Hit"); n != 2 {
		t.Errorf("KillGroup = %d, want 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("kill order = %v, want [1 2]", order)
	}
	if !other.Running() || c.ActiveCount() != 1 {
		t.Error("KillGroup reached outside its group")
	}
	if c.KillGroup("missing") != 0 {
		t.Error("unknown group killed something")
	}
}

func TestPauseAndPlayGroup(t *testing.T) {
	c := NewCoordinator(nil)
	var v float64

	c.Play(Value(0, 1, 1, ease.Linear, func(x float64) { v = x }), InGroup("UI"))
	c.Update(0.25)
	c.PauseGroup("UI")
	c.Update(0.5)
	if !approxEqual(v, 0.25, 0.01) {
		t.Errorf("paused value moved to %f", v)
	}
	c.PlayGroup("UI")
	c.Update(0.25)
	if !approxEqual(v, 0.5, 0.01) {
		t.Errorf("resumed value = %f, want ~0.5", v)
	}
}

func TestDeadTargetSkipsCallbacks(t *testing.T) {
	c := NewCoordinator(nil)
	target := &fakeTarget{alive: true}
	called := false
	var v float64

	h := c.Play(Value(0, 1, 1, ease.Linear, func(x float64) { v = x }), WithTarget(target)).
		OnComplete(func() { called = true }).
		OnKill(func() { called = true })
	c.Update(0.5)
	target.alive = false
	c.Update(0.6)

	if called {
		t.Error("callback ran against a dead target")
	}
	if h.State() != Killed || c.ActiveCount() != 0 {
		t.Errorf("state = %v active = %d", h.State(), c.ActiveCount())
	}
	if v > 0.51 {
		t.Errorf("dead target was still written: %f", v)
	}
}

func TestPausedHandleWithDeadTargetIsDropped(t *testing.T) {
	c := NewCoordinator(nil)
	target := &fakeTarget{alive: true}
	called := false

	h := c.Play(Delay(1), WithTarget(target), InGroup("Hit")).
		OnKill(func() { called = true })
	c.PauseGroup("Hit")
	target.alive = false
	for i := 0; i < 10; i++ {
		c.Update(0.1)
	}

	if c.ActiveCount() != 0 || c.GroupSize("Hit") != 0 || c.HasGroup("Hit") {
		t.Errorf("active = %d group = %d has = %v", c.ActiveCount(), c.GroupSize("Hit"), c.HasGroup("Hit"))
	}
	if h.State() != Killed || called {
		t.Errorf("state = %v called = %v", h.State(), called)
	}
}

func TestGroupOpsPruneDeadTargets(t *testing.T) {
	c := NewCoordinator(nil)
	dead := &fakeTarget{alive: true}
	alive := &fakeTarget{alive: true}

	c.Play(Delay(1), WithTarget(dead), InGroup("Hit"))
	keep := c.Play(Delay(1), WithTarget(alive), InGroup("Hit"))
	dead.alive = false
	c.PauseGroup("Hit")

	if c.GroupSize("Hit") != 1 || c.ActiveCount() != 1 {
		t.Fatalf("group = %d active = %d", c.GroupSize("Hit"), c.ActiveCount())
	}
	if !keep.Paused() {
		t.Error("live member was not paused")
	}

	alive.alive = false
	c.PlayGroup("Hit")
	if c.HasGroup("Hit") || c.ActiveCount() != 0 {
		t.Errorf("group survived its last target: active = %d", c.ActiveCount())
	}
}

func TestPlayOnDeadTarget(t *testing.T) {
	c := NewCoordinator(nil)
	h := c.Play(Delay(1), WithTarget(&fakeTarget{}), InGroup("Hit"))
	if h.State() != Killed || c.ActiveCount() != 0 || c.HasGroup("Hit") {
		t.Error("tween against a dead target was registered")
	}
}

func TestKillTarget(t *testing.T) {
	c := NewCoordinator(nil)
	a, b := &fakeTarget{alive: true}, &fakeTarget{alive: true}

	c.Play(Delay(1), WithTarget(a))
	c.Play(Delay(1), WithTarget(a), InGroup("Hit"))
	keep := c.Play(Delay(1), WithTarget(b))

	if n := c.KillTarget(a); n != 2 {
		t.Errorf("KillTarget = %d, want 2", n)
	}
	if !keep.Running() || c.HasGroup("Hit") {
		t.Error("KillTarget bookkeeping wrong")
	}
}

func TestKillAllIsReentrantSafe(t *testing.T) {
	c := NewCoordinator(nil)
	c.KillAll()

	var spawned *Handle
	c.Play(Delay(1), InGroup("Hit")).OnKill(func() {
		spawned = c.Play(Delay(1), InGroup("Hit"))
	})
	c.Play(Delay(1), InGroup("UI")).OnKill(func() {
		c.KillGroup("UI")
	})

	c.KillAll()
	if c.ActiveCount() != 0 || len(c.Groups()) != 0 {
		t.Errorf("active = %d groups = %v after KillAll", c.ActiveCount(), c.Groups())
	}
	if spawned == nil || spawned.State() != Killed {
		t.Error("tween started during KillAll survived")
	}
	c.Update(1)
}

func TestCallbackMayStartTweensDuringUpdate(t *testing.T) {
	c := NewCoordinator(nil)
	var next *Handle

	c.Play(Delay(0.1)).OnComplete(func() {
		next = c.Play(Delay(0.1))
	})
	c.Update(0.2)
	if next == nil || !next.Running() {
		t.Fatal("chained tween not registered")
	}
	c.Update(0.2)
	if next.State() != Completed {
		t.Errorf("chained tween state = %v", next.State())
	}
}

func TestNilHandleIsSafe(t *testing.T) {
	var h *Handle
	h.Kill()
	h.Pause()
	h.Resume()
	h.OnComplete(func() {})
	if h.Running() || h.State() != Killed {
		t.Error("nil handle should read as killed")
	}
}
