package systems

import (
	"github.com/yohamta/donburi/ecs"
)

// UpdatePools runs preload batches, auto-return timers and shrink
// maintenance.
func UpdatePools(e *ecs.ECS) {
	rt := GetRuntime(e)
	rt.Pools.Update(rt.Dt)
}
