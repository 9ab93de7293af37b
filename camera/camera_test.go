package camera

import (
	"math"
	"testing"

	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/tween"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

type fakeTarget struct {
	x, y  float64
	alive bool
}

func (f *fakeTarget) Alive() bool                 { return f.alive }
func (f *fakeTarget) Position() (float64, float64) { return f.x, f.y }

func testConfig(mode string) config.CameraConfig {
	return config.CameraConfig{
		Mode:              mode,
		SmoothTime:        0.2,
		LinearRate:        5,
		DeadZoneWidth:     2,
		DeadZoneHeight:    1,
		MaxShakeIntensity: 12,
		ShakeFrequency:    30,
		DefaultSize:       10,
		MinSize:           5,
		MaxSize:           40,
		Aspect:            1,
	}
}

func newTestCamera(mode string) (*Camera, *tween.Coordinator) {
	coord := tween.NewCoordinator(nil)
	return New(testConfig(mode), coord, "Camera", nil), coord
}

func TestDeadZoneInsideWindowDoesNotMove(t *testing.T) {
	c, _ := newTestCamera("deadzone")
	target := &fakeTarget{x: 0.5, y: 0, alive: true}
	c.SetTarget(target)

	c.Update(1.0 / 60)
	x, y := c.FollowPosition()
	if x != 0 || y != 0 {
		t.Errorf("camera moved to (%f, %f), want (0, 0)", x, y)
	}
}

func TestDeadZoneMovesByExcess(t *testing.T) {
	c, _ := newTestCamera("deadzone")
	target := &fakeTarget{x: 1.5, y: 0, alive: true}
	c.SetTarget(target)

	c.Update(1.0 / 60)
	x, y := c.FollowPosition()
	if !approxEqual(x, 0.5, 1e-9) || y != 0 {
		t.Errorf("camera = (%f, %f), want (0.5, 0)", x, y)
	}

	target.x = -2
	c.Update(1.0 / 60)
	x, _ = c.FollowPosition()
	if !approxEqual(x, -1, 1e-9) {
		t.Errorf("camera x = %f, want -1", x)
	}
}

func TestInstantCopiesTarget(t *testing.T) {
	c, _ := newTestCamera("instant")
	c.SetTarget(&fakeTarget{x: 7, y: -3, alive: true})

	c.Update(1.0 / 60)
	if x, y := c.FollowPosition(); x != 7 || y != -3 {
		t.Errorf("camera = (%f, %f), want (7, -3)", x, y)
	}
}

func TestSmoothSettlesWithoutOvershoot(t *testing.T) {
	c, _ := newTestCamera("smooth")
	c.SetTarget(&fakeTarget{x: 100, y: 0, alive: true})

	for i := 0; i < 120; i++ {
		c.Update(1.0 / 60)
		if x, _ := c.FollowPosition(); x > 100 {
			t.Fatalf("overshot at tick %d: %f", i, x)
		}
	}
	if x, _ := c.FollowPosition(); !approxEqual(x, 100, 0.5) {
		t.Errorf("x = %f, want ~100 after two seconds", x)
	}
}

func TestLinearApproachIsExponential(t *testing.T) {
	c, _ := newTestCamera("linear")
	c.SetTarget(&fakeTarget{x: 10, alive: true})

	dt := 0.1
	c.Update(dt)
	want := 10 * (1 - math.Exp(-5*dt))
	if x, _ := c.FollowPosition(); !approxEqual(x, want, 1e-9) {
		t.Errorf("x = %f, want %f", x, want)
	}
}

func TestPredictionLeadsMovingTarget(t *testing.T) {
	cfg := testConfig("instant")
	cfg.PredictionTime = 0.5
	cfg.PredictionInfluence = 1
	c := New(cfg, tween.NewCoordinator(nil), "Camera", nil)
	target := &fakeTarget{alive: true}
	c.SetTarget(target)

	c.Update(0.1)
	target.x = 1 // 10 units per second
	c.Update(0.1)
	if x, _ := c.FollowPosition(); !approxEqual(x, 6, 1e-9) {
		t.Errorf("x = %f, want 6 (1 + 10*0.5)", x)
	}
}

func TestOffsetIsApplied(t *testing.T) {
	cfg := testConfig("instant")
	cfg.OffsetX, cfg.OffsetY = 3, -4
	c := New(cfg, tween.NewCoordinator(nil), "Camera", nil)
	c.SetTarget(&fakeTarget{x: 1, y: 1, alive: true})

	c.Update(1.0 / 60)
	if x, y := c.FollowPosition(); x != 4 || y != -3 {
		t.Errorf("camera = (%f, %f), want (4, -3)", x, y)
	}
}

func TestBoundsClampHalfViewport(t *testing.T) {
	c, _ := newTestCamera("instant")
	c.SetBounds(Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
	target := &fakeTarget{x: 0, y: 200, alive: true}
	c.SetTarget(target)

	c.Update(1.0 / 60)
	// half extent is 10 on both axes
	if x, y := c.FollowPosition(); x != 10 || y != 90 {
		t.Errorf("camera = (%f, %f), want (10, 90)", x, y)
	}
}

func TestBoundsPadding(t *testing.T) {
	cfg := testConfig("instant")
	cfg.BoundsPadding = 5
	c := New(cfg, tween.NewCoordinator(nil), "Camera", nil)
	c.SetBounds(Rect{MaxX: 100, MaxY: 100})
	c.SetTarget(&fakeTarget{x: 0, y: 0, alive: true})

	c.Update(1.0 / 60)
	if x, y := c.FollowPosition(); x != 15 || y != 15 {
		t.Errorf("camera = (%f, %f), want (15, 15)", x, y)
	}
}

func TestSmallBoundsCenter(t *testing.T) {
	c, _ := newTestCamera("instant")
	c.SetBounds(Rect{MinX: 0, MinY: 0, MaxX: 12, MaxY: 100})
	c.SetTarget(&fakeTarget{x: 50, y: 50, alive: true})

	c.Update(1.0 / 60)
	if x, _ := c.FollowPosition(); x != 6 {
		t.Errorf("x = %f, want the bounds center 6", x)
	}
}

func TestZoomRecomputesBounds(t *testing.T) {
	c, _ := newTestCamera("instant")
	c.SetBounds(Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
	c.MoveTo(10, 50, 0)

	c.ZoomTo(20, 0)
	if c.Size() != 20 {
		t.Fatalf("size = %f, want 20", c.Size())
	}
	if x, _ := c.FollowPosition(); x != 20 {
		t.Errorf("x = %f, want 20 after zooming out", x)
	}
}

func TestZoomClampsAndEases(t *testing.T) {
	c, coord := newTestCamera("instant")

	h := c.ZoomTo(1000, 1)
	for i := 0; i < 30; i++ {
		coord.Update(1.0 / 60)
	}
	mid := c.Size()
	if mid <= 10 || mid >= 40 {
		t.Errorf("mid-zoom size = %f, want between 10 and 40", mid)
	}
	for i := 0; i < 40; i++ {
		coord.Update(1.0 / 60)
	}
	if !approxEqual(c.Size(), 40, 1e-6) || h.State() != tween.Completed {
		t.Errorf("size = %f state = %v, want 40 completed", c.Size(), h.State())
	}

	c.ZoomTo(0, 0)
	if c.Size() != 5 {
		t.Errorf("size = %f, want min 5", c.Size())
	}
}

func TestShakeClampsAndDecays(t *testing.T) {
	c, coord := newTestCamera("instant")

	h := c.Shake(50, 0.5)
	if c.ShakeAmplitude() != 12 {
		t.Errorf("amplitude = %f, want clamp 12", c.ShakeAmplitude())
	}
	if !c.Shaking() {
		t.Fatal("not shaking")
	}
	for i := 0; i < 40; i++ {
		coord.Update(1.0 / 60)
		c.Update(1.0 / 60)
	}
	if c.Shaking() || c.ShakeAmplitude() != 0 || h.State() != tween.Completed {
		t.Errorf("shaking=%v amp=%f state=%v", c.Shaking(), c.ShakeAmplitude(), h.State())
	}
	if ox, oy := c.ShakeOffset(); ox != 0 || oy != 0 {
		t.Errorf("offset = (%f, %f) after shake", ox, oy)
	}
}

func TestShakeReplacesPrevious(t *testing.T) {
	c, coord := newTestCamera("instant")

	first := c.Shake(4, 1)
	second := c.Shake(2, 1)
	if first.State() != tween.Killed {
		t.Errorf("first shake state = %v, want killed", first.State())
	}
	if !second.Running() || c.ShakeAmplitude() != 2 {
		t.Errorf("second running=%v amp=%f", second.Running(), c.ShakeAmplitude())
	}
	if coord.GroupSize("Camera") != 1 {
		t.Errorf("camera group size = %d, want 1", coord.GroupSize("Camera"))
	}
}

func TestShakeIsAdditive(t *testing.T) {
	c, _ := newTestCamera("instant")
	c.SetTarget(&fakeTarget{x: 30, y: 40, alive: true})
	c.Shake(5, 1)
	c.Update(0.05)

	fx, fy := c.FollowPosition()
	px, py := c.Position()
	ox, oy := c.ShakeOffset()
	if fx != 30 || fy != 40 {
		t.Errorf("shake leaked into follow position: (%f, %f)", fx, fy)
	}
	if px != fx+ox || py != fy+oy {
		t.Errorf("position (%f, %f) != follow + offset", px, py)
	}
}

func TestKillingCameraGroupStopsShake(t *testing.T) {
	c, coord := newTestCamera("instant")
	c.Shake(5, 1)
	coord.KillGroup("Camera")
	if c.ShakeAmplitude() != 0 {
		t.Errorf("amplitude = %f after group kill", c.ShakeAmplitude())
	}
}

func TestFalloffIntensity(t *testing.T) {
	if v, ok := FalloffIntensity(5, 10, 1); !ok || !approxEqual(v, 0.5, 1e-12) {
		t.Errorf("FalloffIntensity(5) = %f, %v; want 0.5, true", v, ok)
	}
	if _, ok := FalloffIntensity(10, 10, 1); ok {
		t.Error("distance equal to max should not shake")
	}
	if _, ok := FalloffIntensity(15, 10, 1); ok {
		t.Error("distance beyond max should not shake")
	}
}

func TestShakeByDistance(t *testing.T) {
	c, coord := newTestCamera("instant")
	listener := dmath.Vec2{X: 0, Y: 0}

	if h := c.ShakeByDistance(dmath.Vec2{X: 10, Y: 0}, listener, 10, 1, 0.3); h != nil {
		t.Error("shake started at max distance")
	}
	if coord.ActiveCount() != 0 {
		t.Errorf("active tweens = %d, want 0", coord.ActiveCount())
	}

	if h := c.ShakeByDistance(dmath.Vec2{X: 3, Y: 4}, listener, 10, 1, 0.3); h == nil {
		t.Fatal("no shake within range")
	}
	if !approxEqual(c.ShakeAmplitude(), 0.5, 1e-12) {
		t.Errorf("amplitude = %f, want 0.5", c.ShakeAmplitude())
	}
}

func TestMoveToStopsFollowing(t *testing.T) {
	c, coord := newTestCamera("instant")
	c.SetTarget(&fakeTarget{x: 5, alive: true})

	c.MoveTo(-20, 8, 0)
	if c.Target() != nil {
		t.Error("target kept after MoveTo")
	}
	if x, y := c.FollowPosition(); x != -20 || y != 8 {
		t.Errorf("snap = (%f, %f)", x, y)
	}

	h := c.MoveTo(0, 0, 0.5)
	for i := 0; i < 40; i++ {
		coord.Update(1.0 / 60)
		c.Update(1.0 / 60)
	}
	if x, y := c.FollowPosition(); x != 0 || y != 0 || h.State() != tween.Completed {
		t.Errorf("pan ended at (%f, %f) state %v", x, y, h.State())
	}
}

func TestDeadTargetIsDropped(t *testing.T) {
	c, _ := newTestCamera("instant")
	target := &fakeTarget{x: 5, alive: true}
	c.SetTarget(target)
	c.Update(1.0 / 60)

	target.alive = false
	target.x = 500
	c.Update(1.0 / 60)
	if x, _ := c.FollowPosition(); x != 5 {
		t.Errorf("camera followed a dead target to %f", x)
	}
	if c.Target() != nil {
		t.Error("dead target not cleared")
	}
}

func TestSetModeResetsVelocity(t *testing.T) {
	c, _ := newTestCamera("smooth")
	c.SetTarget(&fakeTarget{x: 100, alive: true})
	c.Update(1.0 / 60)
	if vx, _ := c.Velocity(); vx == 0 {
		t.Fatal("smooth follow built no velocity")
	}
	c.SetMode(DeadZone)
	if vx, _ := c.Velocity(); vx != 0 {
		t.Errorf("velocity = %f after mode switch", vx)
	}
	if c.Mode() != DeadZone {
		t.Errorf("mode = %v", c.Mode())
	}
}

func TestWorldScreenRoundTrip(t *testing.T) {
	c, _ := newTestCamera("instant")
	c.MoveTo(50, 20, 0)

	sx, sy := c.WorldToScreen(55, 25, 640, 360)
	// scale = 360 / 2 / 10 = 18
	if !approxEqual(sx, 320+90, 1e-9) || !approxEqual(sy, 180+90, 1e-9) {
		t.Errorf("screen = (%f, %f)", sx, sy)
	}
	wx, wy := c.ScreenToWorld(sx, sy, 640, 360)
	if !approxEqual(wx, 55, 1e-9) || !approxEqual(wy, 25, 1e-9) {
		t.Errorf("world = (%f, %f)", wx, wy)
	}
}
