package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/components"
	"github.com/automoto/doomkit/tags"
)

// UpdateEffects returns pooled actors whose clip has finished a pass.
func UpdateEffects(ecs *ecs.ECS) {
	var toRelease []*donburi.Entry

	tags.Actor.Each(ecs.World, func(e *donburi.Entry) {
		p := components.Pooled.Get(e)
		if !p.Active || !p.ReleaseOnLoop {
			return
		}
		anim := components.Animation.Get(e)
		if anim.CurrentAnimation != nil && anim.CurrentAnimation.Looped {
			toRelease = append(toRelease, e)
		}
	})

	for _, e := range toRelease {
		ReleaseActor(ecs, e)
	}
}
