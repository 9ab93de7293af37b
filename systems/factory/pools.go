package factory

import (
	"errors"
	"fmt"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/pool"
	"github.com/automoto/doomkit/tween"
)

var ErrUnknownKind = errors.New("unknown actor kind")

// CreatePools registers one actor pool per definition and queues any
// requested preload.
func CreatePools(e *ecs.ECS, reg *pool.Registry, defs []cfg.PoolDef, space *resolv.Space, tweens *tween.Coordinator) error {
	for _, def := range defs {
		kind, ok := cfg.ActorKinds[def.Template]
		if !ok {
			return fmt.Errorf("pool %q: %w %q", def.Name, ErrUnknownKind, def.Template)
		}
		tmpl := NewActorTemplate(e, def.Name, kind, space, tweens)
		if err := reg.CreatePool(def.Name, tmpl, poolOptions(def)...); err != nil {
			return err
		}
		if def.Preload > 0 {
			if _, err := reg.Preload(def.Name, def.Preload); err != nil {
				return err
			}
		}
	}
	return nil
}

// AcquireActor takes an actor from the named pool, or nil when the pool is
// exhausted or unknown.
func AcquireActor(reg *pool.Registry, name string, x, y, rotation float64) *Actor {
	r := reg.Acquire(name, x, y, rotation)
	if r == nil {
		return nil
	}
	return r.(*Actor)
}

// poolOptions passes on only what the definition declares; the rest comes
// from the registry defaults.
func poolOptions(def cfg.PoolDef) []pool.Option {
	var opts []pool.Option
	if def.Initial != nil {
		opts = append(opts, pool.WithInitialSize(*def.Initial))
	}
	if def.Max > 0 {
		opts = append(opts, pool.WithMaxSize(def.Max))
	}
	if def.AutoExpand != nil {
		opts = append(opts, pool.WithAutoExpand(*def.AutoExpand))
	}
	return opts
}
