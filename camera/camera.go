// Package camera implements a 2D follow camera: several follow strategies,
// world bounds, zoom and screen shake. Shake and zoom run as tweens on a
// shared coordinator so they pause and die with everything else.
package camera

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/tween"
)

// Mode selects how the camera approaches its target.
type Mode = config.FollowModeID

const (
	Instant  = config.FollowInstant
	Smooth   = config.FollowSmooth
	Linear   = config.FollowLinear
	DeadZone = config.FollowDeadZone
)

// Target is a weakly referenced thing to follow.
type Target interface {
	Alive() bool
	Position() (x, y float64)
}

// Rect is an axis-aligned world rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Camera is a stateful viewport controller, updated once per late tick
// after all actor motion.
type Camera struct {
	cfg  config.CameraConfig
	mode Mode

	target Target
	x, y   float64 // follow position, shake excluded
	velX   float64 // smooth-follow velocity accumulators
	velY   float64

	lastTX, lastTY float64
	hasLast        bool

	bounds    Rect
	hasBounds bool
	eff       Rect // bounds shrunk by the visible half-extent and padding

	size float64 // visible half-height in world units

	shakeAmp  float64
	shakeTime float64

	shakeHandle *tween.Handle
	zoomHandle  *tween.Handle
	moveHandle  *tween.Handle

	coord  *tween.Coordinator
	group  string
	logger *zap.Logger
}

// New creates a camera at the origin. The coordinator is required.
func New(cfg config.CameraConfig, coord *tween.Coordinator, group string, logger *zap.Logger) *Camera {
	if coord == nil {
		panic("camera: nil tween coordinator")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	mode, ok := config.ParseFollowMode(cfg.Mode)
	if !ok {
		logger.Error("unknown camera mode, using smooth", zap.String("mode", cfg.Mode))
		mode = Smooth
	}
	c := &Camera{
		cfg:    cfg,
		mode:   mode,
		coord:  coord,
		group:  group,
		logger: logger,
	}
	c.setSize(clamp(cfg.DefaultSize, cfg.MinSize, cfg.MaxSize))
	return c
}

// SetTarget starts following t. A nil target stops following.
func (c *Camera) SetTarget(t Target) {
	c.target = t
	c.hasLast = false
	c.moveHandle.Kill()
}

// Target returns the followed target, or nil.
func (c *Camera) Target() Target { return c.target }

// SnapToTarget jumps straight to the target's framed position.
func (c *Camera) SnapToTarget() {
	if c.target == nil || !c.target.Alive() {
		return
	}
	tx, ty := c.target.Position()
	c.x, c.y = tx+c.cfg.OffsetX, ty+c.cfg.OffsetY
	c.velX, c.velY = 0, 0
	c.hasLast = false
	c.clampPosition()
}

// SetMode switches follow strategy on the next tick, without a transition.
func (c *Camera) SetMode(m Mode) {
	c.mode = m
	c.velX, c.velY = 0, 0
}

func (c *Camera) Mode() Mode { return c.mode }

// SetBounds enables clamping to the given world rectangle.
func (c *Camera) SetBounds(r Rect) {
	c.bounds = r
	c.hasBounds = true
	c.recomputeBounds()
	c.clampPosition()
}

// ClearBounds disables clamping.
func (c *Camera) ClearBounds() {
	c.hasBounds = false
}

// Bounds returns the world bounds and whether they are enabled.
func (c *Camera) Bounds() (Rect, bool) { return c.bounds, c.hasBounds }

// Update runs one late tick: follow, clamp, then advance the shake clock.
func (c *Camera) Update(dt float64) {
	c.shakeTime += dt

	if c.target != nil && !c.target.Alive() {
		c.target = nil
		c.hasLast = false
	}
	if c.target != nil {
		rx, ry := c.rawTarget(dt)
		switch c.mode {
		case Instant:
			c.x, c.y = rx, ry
		case Smooth:
			c.x, c.velX = smoothDamp(c.x, rx, c.velX, c.cfg.SmoothTime, dt)
			c.y, c.velY = smoothDamp(c.y, ry, c.velY, c.cfg.SmoothTime, dt)
		case Linear:
			t := 1 - math.Exp(-c.cfg.LinearRate*dt)
			c.x += (rx - c.x) * t
			c.y += (ry - c.y) * t
		case DeadZone:
			c.x = deadZone(c.x, rx, c.cfg.DeadZoneWidth/2)
			c.y = deadZone(c.y, ry, c.cfg.DeadZoneHeight/2)
		}
	}
	c.clampPosition()
}

// rawTarget is the target position plus offset, extrapolated by its
// measured velocity.
func (c *Camera) rawTarget(dt float64) (float64, float64) {
	tx, ty := c.target.Position()
	tx += c.cfg.OffsetX
	ty += c.cfg.OffsetY

	rx, ry := tx, ty
	if c.hasLast && dt > 0 && c.cfg.PredictionTime > 0 {
		k := c.cfg.PredictionTime * c.cfg.PredictionInfluence
		rx += (tx - c.lastTX) / dt * k
		ry += (ty - c.lastTY) / dt * k
	}
	c.lastTX, c.lastTY = tx, ty
	c.hasLast = true
	return rx, ry
}

// MoveTo stops following and pans to a world position. A non-positive
// duration snaps.
func (c *Camera) MoveTo(x, y, duration float64) *tween.Handle {
	c.target = nil
	c.hasLast = false
	c.moveHandle.Kill()
	c.velX, c.velY = 0, 0
	if duration <= 0 {
		c.x, c.y = x, y
		c.clampPosition()
		return nil
	}
	ch := tween.Channel{
		Get: func() []float64 { return []float64{c.x, c.y} },
		Set: func(v []float64) { c.x, c.y = v[0], v[1] },
	}
	c.moveHandle = c.coord.Play(tween.To(ch, duration, ease.InOutCubic, x, y), tween.InGroup(c.group))
	return c.moveHandle
}

// Position is the final view center: follow position plus shake.
func (c *Camera) Position() (float64, float64) {
	ox, oy := c.ShakeOffset()
	return c.x + ox, c.y + oy
}

// FollowPosition is the view center without shake.
func (c *Camera) FollowPosition() (float64, float64) { return c.x, c.y }

// Velocity is the smooth-follow velocity accumulator.
func (c *Camera) Velocity() (float64, float64) { return c.velX, c.velY }

// Size is the current visible half-height.
func (c *Camera) Size() float64 { return c.size }

// Scale converts world units to screen pixels for a screen of the given
// height.
func (c *Camera) Scale(screenH float64) float64 {
	return screenH / 2 / c.size
}

// ViewOffset is the translation that puts the view center in the middle of
// a screen, before scaling.
func (c *Camera) ViewOffset() (float64, float64) {
	px, py := c.Position()
	return -px, -py
}

// WorldToScreen maps a world point onto a screen of the given size.
func (c *Camera) WorldToScreen(wx, wy, screenW, screenH float64) (float64, float64) {
	px, py := c.Position()
	s := c.Scale(screenH)
	return (wx-px)*s + screenW/2, (wy-py)*s + screenH/2
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy, screenW, screenH float64) (float64, float64) {
	px, py := c.Position()
	s := c.Scale(screenH)
	return (sx-screenW/2)/s + px, (sy-screenH/2)/s + py
}

// Apply appends the world-to-screen transform to geo.
func (c *Camera) Apply(geo *ebiten.GeoM, screenW, screenH float64) {
	ox, oy := c.ViewOffset()
	s := c.Scale(screenH)
	geo.Translate(ox, oy)
	geo.Scale(s, s)
	geo.Translate(screenW/2, screenH/2)
}

// Visible returns the world rectangle currently on screen.
func (c *Camera) Visible() Rect {
	px, py := c.Position()
	halfW, halfH := c.halfExtent()
	return Rect{MinX: px - halfW, MinY: py - halfH, MaxX: px + halfW, MaxY: py + halfH}
}

func (c *Camera) halfExtent() (float64, float64) {
	aspect := c.cfg.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return c.size * aspect, c.size
}

func (c *Camera) recomputeBounds() {
	if !c.hasBounds {
		return
	}
	halfW, halfH := c.halfExtent()
	halfW += c.cfg.BoundsPadding
	halfH += c.cfg.BoundsPadding
	c.eff = Rect{
		MinX: c.bounds.MinX + halfW,
		MaxX: c.bounds.MaxX - halfW,
		MinY: c.bounds.MinY + halfH,
		MaxY: c.bounds.MaxY - halfH,
	}
}

// clampPosition keeps the viewport edge inside the bounds, centering on an
// axis where the bounds are smaller than the view.
func (c *Camera) clampPosition() {
	if !c.hasBounds {
		return
	}
	if c.eff.MinX > c.eff.MaxX {
		c.x = (c.bounds.MinX + c.bounds.MaxX) / 2
	} else {
		c.x = clamp(c.x, c.eff.MinX, c.eff.MaxX)
	}
	if c.eff.MinY > c.eff.MaxY {
		c.y = (c.bounds.MinY + c.bounds.MaxY) / 2
	} else {
		c.y = clamp(c.y, c.eff.MinY, c.eff.MaxY)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
