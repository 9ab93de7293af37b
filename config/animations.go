package config

import "image/color"

// AnimationDef is a frame strip played at FPS frames per second.
type AnimationDef struct {
	First int
	Last  int
	FPS   float64
}

// CharacterAnimations maps a character key (e.g., "player")
// to its specific set of animation definitions.
var CharacterAnimations = map[string]map[StateID]AnimationDef{
	"player": {
		Idle:    {First: 0, Last: 3, FPS: 6},
		Running: {First: 0, Last: 5, FPS: 12},
		Jump:    {First: 0, Last: 0, FPS: 0},
		Fall:    {First: 0, Last: 0, FPS: 0},
	},
	"vfx": {
		StateSpark: {First: 0, Last: 7, FPS: 24},
		StateDust:  {First: 0, Last: 5, FPS: 18},
		StateCrate: {First: 0, Last: 0, FPS: 0},
	},
}

// ActorKind describes a pooled actor template: its size, how it is drawn
// and whether it takes part in physics.
type ActorKind struct {
	Width, Height float64
	Color         color.RGBA
	State         StateID // clip played while active
	ReleaseOnLoop bool    // return to the pool when the clip loops
	Lifetime      float64 // seconds before auto-return, 0 = never
	Solid         bool    // registered in the collision space
	Speed         float64 // launch speed in pixels per second along the spawn rotation
	GravityScale  float64 // multiplier on Physics.Gravity
	Friction      float64 // horizontal speed lost per second on the ground
}

// ActorKinds is keyed by template name.
var ActorKinds = map[string]ActorKind{
	"spark": {
		Width: 4, Height: 4,
		Color:         BrightOrange,
		State:         StateSpark,
		ReleaseOnLoop: true,
		Speed:         180,
		GravityScale:  0.4,
	},
	"dust": {
		Width: 10, Height: 6,
		Color:    Grey,
		State:    StateDust,
		Lifetime: 0.4,
		Speed:    20,
	},
	"crate": {
		Width: 20, Height: 20,
		Color:        Orange,
		State:        StateCrate,
		Lifetime:     12,
		Solid:        true,
		GravityScale: 1,
		Friction:     600,
	},
}
