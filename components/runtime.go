package components

import (
	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/automoto/doomkit/pool"
	"github.com/automoto/doomkit/tween"
)

// RuntimeData carries the services of one session (singleton component).
// Systems reach them through the world instead of package globals, so a
// torn-down session leaves nothing behind.
type RuntimeData struct {
	Pools  *pool.Registry
	Tweens *tween.Coordinator
	Logger *zap.Logger
	Dt     float64 // fixed step in seconds
	Ticks  int
}

var Runtime = donburi.NewComponentType[RuntimeData]()
