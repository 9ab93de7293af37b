package components

import (
	"github.com/yohamta/donburi"
)

// PhysicsData is the simple ballistic state of pooled actors. The player
// is driven by a motion controller instead.
type PhysicsData struct {
	SpeedX   float64
	SpeedY   float64
	Gravity  float64
	Friction float64 // horizontal speed lost per second while grounded
	OnGround bool
}

var Physics = donburi.NewComponentType[PhysicsData]()
