package motion

import (
	"math"

	"github.com/automoto/doomkit/config"
)

// GroundProbe reports whether there is ground directly under the actor.
type GroundProbe interface {
	OnGround() bool
}

// Body is the physical side of an actor. Move resolves collisions and
// reports which axes were blocked.
type Body interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
	Move(dx, dy float64) (blockedX, blockedY bool)
}

// Config is the motion tuning plus the world's gravity. Y grows downward.
type Config struct {
	config.MotionConfig
	Gravity      float64
	MaxFallSpeed float64
}

// DefaultConfig reads the process-wide motion and physics settings.
func DefaultConfig() Config {
	return Config{
		MotionConfig: config.Motion,
		Gravity:      config.Physics.Gravity,
		MaxFallSpeed: config.Physics.MaxFallSpeed,
	}
}

// Events reports what happened during one tick.
type Events struct {
	Jumped    bool
	AirJump   bool // the jump was not from the ground or coyote window
	Landed    bool
	LandSpeed float64 // fall speed just before touching down
	Turned    bool
}

// Controller owns one actor's continuous motion state.
type Controller struct {
	cfg   Config
	probe GroundProbe
	body  Body
	src   IntentSource

	vx, vy    float64
	grounded  bool
	jumping   bool
	jumpCount int
	airTime   float64 // seconds since last grounded
	buffer    float64 // remaining jump buffer
	facing    float64
	fallSpeed float64
	primed    bool
}

// New creates a controller. probe and body are required; src may be nil,
// in which case the actor stands still.
func New(cfg Config, probe GroundProbe, body Body, src IntentSource) *Controller {
	if probe == nil {
		panic("motion: nil ground probe")
	}
	if body == nil {
		panic("motion: nil body")
	}
	return &Controller{
		cfg:    cfg,
		probe:  probe,
		body:   body,
		src:    src,
		facing: config.DirectionRight,
	}
}

// SetIntentSource swaps the input policy.
func (c *Controller) SetIntentSource(src IntentSource) { c.src = src }

// FixedUpdate advances one physics tick.
func (c *Controller) FixedUpdate(dt float64) Events {
	var ev Events
	if dt <= 0 {
		return ev
	}
	var in Intent
	if c.src != nil {
		in = c.src.Intent()
	}
	in.MoveX = math.Max(-1, math.Min(1, in.MoveX))

	wasGrounded := c.grounded
	c.grounded = c.probe.OnGround() && c.vy >= 0
	if c.grounded {
		if !wasGrounded && c.primed {
			ev.Landed = true
			ev.LandSpeed = c.fallSpeed
		}
		c.airTime = 0
		c.jumpCount = 0
		c.jumping = false
		c.vy = 0
	} else {
		c.airTime += dt
	}
	c.primed = true

	if in.JumpPressed {
		c.buffer = c.cfg.JumpBufferTime
		if c.buffer <= 0 {
			c.buffer = dt / 2 // unbuffered: only this tick
		}
	}
	if c.buffer > 0 {
		if ok, air := c.canJump(); ok {
			c.jump(air)
			ev.Jumped = true
			ev.AirJump = air
		}
	}
	c.buffer = math.Max(0, c.buffer-dt)

	if in.JumpReleased && c.jumping && c.vy < 0 {
		c.vy *= c.cfg.JumpCutMultiplier
		c.jumping = false
	}

	c.moveHorizontal(in.MoveX, dt)
	if c.cfg.FlipWithInput && in.MoveX != 0 {
		dir := config.DirectionRight
		if in.MoveX < 0 {
			dir = config.DirectionLeft
		}
		if dir != c.facing {
			c.facing = dir
			ev.Turned = true
		}
	}

	if !c.grounded {
		c.vy = math.Min(c.vy+c.cfg.Gravity*dt, c.cfg.MaxFallSpeed)
	}
	if c.vy > 0 {
		c.fallSpeed = c.vy
	}
	if c.jumping && c.vy >= 0 {
		c.jumping = false
	}

	blockedX, blockedY := c.body.Move(c.vx*dt, c.vy*dt)
	if blockedX {
		c.vx = 0
	}
	if blockedY {
		if c.vy < 0 {
			c.jumping = false
		}
		c.vy = 0
	}
	return ev
}

// canJump reports whether a jump is allowed now and whether it would be an
// air jump. Walking off a ledge spends the ground jump once coyote time runs
// out.
func (c *Controller) canJump() (ok, air bool) {
	if c.grounded || (c.jumpCount == 0 && c.airTime <= c.cfg.CoyoteTime) {
		return true, false
	}
	used := c.jumpCount
	if used == 0 {
		used = 1
	}
	return used < c.cfg.MaxJumps, true
}

func (c *Controller) jump(air bool) {
	if air && c.jumpCount == 0 {
		c.jumpCount = 1
	}
	c.jumpCount++
	c.vy = -c.cfg.JumpForce
	c.jumping = true
	c.grounded = false
	c.buffer = 0
}

func (c *Controller) moveHorizontal(axis, dt float64) {
	target := axis * c.cfg.MoveSpeed
	rate := c.cfg.Deceleration
	if target != 0 && (c.vx == 0 || (target > 0) == (c.vx > 0)) {
		rate = c.cfg.Acceleration
	}
	if !c.grounded {
		rate *= c.cfg.AirControl
	}
	c.vx = moveTowards(c.vx, target, rate*dt)
}

func moveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Velocity is the current velocity in units per second.
func (c *Controller) Velocity() (float64, float64) { return c.vx, c.vy }

// Grounded reports the ground state resolved on the last tick.
func (c *Controller) Grounded() bool { return c.grounded }

// Jumping is true while rising from a jump.
func (c *Controller) Jumping() bool { return c.jumping }

// Facing is config.DirectionLeft or config.DirectionRight.
func (c *Controller) Facing() float64 { return c.facing }

func (c *Controller) JumpCount() int { return c.jumpCount }

func (c *Controller) SetMoveSpeed(v float64) { c.cfg.MoveSpeed = v }

func (c *Controller) SetJumpForce(v float64) { c.cfg.JumpForce = v }

// AddForce applies an instantaneous velocity change.
func (c *Controller) AddForce(fx, fy float64) {
	c.vx += fx
	c.vy += fy
	if fy < 0 {
		c.grounded = false
	}
}

// Teleport moves the body without sweeping and stops all motion.
func (c *Controller) Teleport(x, y float64) {
	c.body.SetPosition(x, y)
	c.vx, c.vy = 0, 0
	c.jumping = false
	c.buffer = 0
	c.fallSpeed = 0
}

// Reset clears all motion state for reuse from a pool.
func (c *Controller) Reset() {
	c.vx, c.vy = 0, 0
	c.grounded = false
	c.jumping = false
	c.jumpCount = 0
	c.airTime = 0
	c.buffer = 0
	c.fallSpeed = 0
	c.facing = config.DirectionRight
	c.primed = false
}
