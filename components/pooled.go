package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomkit/pool"
)

// PooledData marks an entity owned by an object pool. Inactive entities
// stay in the world but are skipped by every system.
type PooledData struct {
	Resource      pool.Resource // the pool-side handle of this entity
	Slot          pool.Slot
	Kind          string
	Active        bool
	Parent        *donburi.Entry // optional owner, dropped on release
	ReleaseOnLoop bool           // hand back to the pool when the clip loops
	Age           float64        // seconds since acquire
}

var Pooled = donburi.NewComponentType[PooledData]()
