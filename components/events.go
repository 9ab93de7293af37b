package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// JumpEvent is published when an actor leaves the ground under its own power.
type JumpEvent struct {
	Entry *donburi.Entry
	Air   bool
}

// LandEvent is published on the tick an actor regains the ground.
type LandEvent struct {
	Entry     *donburi.Entry
	FallSpeed float64
}

// SpawnEvent is published when a pooled actor is taken from its pool.
type SpawnEvent struct {
	Entry *donburi.Entry
	Kind  string
}

// ReleaseEvent is published when a pooled actor has been handed back.
type ReleaseEvent struct {
	Kind string
	X, Y float64
}

// ExplosionEvent is published at a world position to shake the camera.
type ExplosionEvent struct {
	X, Y float64
}

var (
	Jumped   = events.NewEventType[JumpEvent]()
	Landed   = events.NewEventType[LandEvent]()
	Spawned  = events.NewEventType[SpawnEvent]()
	Released = events.NewEventType[ReleaseEvent]()
	Exploded = events.NewEventType[ExplosionEvent]()
)
