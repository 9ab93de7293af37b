package systems

import (
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/tween"
)

// Animator plays ready-made animations on entities through a coordinator.
// Every handle it starts holds the entity as a weak target.
type Animator struct {
	Tweens *tween.Coordinator
	Cfg    cfg.TweenConfig

	squash  perEntity
	rattles perEntity
}

func NewAnimator(tweens *tween.Coordinator, c cfg.TweenConfig) *Animator {
	return &Animator{
		Tweens:  tweens,
		Cfg:     c,
		squash:  make(perEntity),
		rattles: make(perEntity),
	}
}

// perEntity keeps at most one running handle of a recipe per entity.
type perEntity map[donburi.Entity]*tween.Handle

// sweep drops handles that retired without calling back, which is what
// happens when their target died.
func (m perEntity) sweep() {
	for id, h := range m {
		if !h.Running() {
			delete(m, id)
		}
	}
}

func (m perEntity) track(id donburi.Entity, h *tween.Handle) {
	forget := func() {
		if m[id] == h {
			delete(m, id)
		}
	}
	h.OnComplete(forget).OnKill(forget)
	if h.Running() {
		m[id] = h
	}
}

// PositionChannel animates the top-left corner of the collision box.
func PositionChannel(entry *donburi.Entry) tween.Channel {
	return tween.Channel{
		Get: func() []float64 {
			obj := components.Object.Get(entry)
			return []float64{obj.X, obj.Y}
		},
		Set: func(v []float64) {
			obj := components.Object.Get(entry)
			obj.X, obj.Y = v[0], v[1]
			if obj.Space != nil {
				obj.Update()
			}
		},
	}
}

func ScaleChannel(entry *donburi.Entry) tween.Channel {
	return tween.Channel{
		Get: func() []float64 {
			t := components.Transform.Get(entry)
			return []float64{t.ScaleX, t.ScaleY}
		},
		Set: func(v []float64) {
			t := components.Transform.Get(entry)
			t.ScaleX, t.ScaleY = v[0], v[1]
		},
	}
}

func RotationChannel(entry *donburi.Entry) tween.Channel {
	return tween.Channel{
		Get: func() []float64 { return []float64{components.Transform.Get(entry).Rotation} },
		Set: func(v []float64) { components.Transform.Get(entry).Rotation = v[0] },
	}
}

func AlphaChannel(entry *donburi.Entry) tween.Channel {
	return tween.Channel{
		Get: func() []float64 { return []float64{components.Transform.Get(entry).Alpha} },
		Set: func(v []float64) { components.Transform.Get(entry).Alpha = v[0] },
	}
}

func FlashChannel(entry *donburi.Entry) tween.Channel {
	return tween.Channel{
		Get: func() []float64 { return []float64{components.Transform.Get(entry).Flash} },
		Set: func(v []float64) { components.Transform.Get(entry).Flash = v[0] },
	}
}

// play starts track against entry in group; opts may override both.
func (a *Animator) play(entry *donburi.Entry, group string, track tween.Track, opts []tween.Option) *tween.Handle {
	base := []tween.Option{tween.WithTarget(Target(entry))}
	if group != "" {
		base = append(base, tween.InGroup(group))
	}
	return a.Tweens.Play(track, append(base, opts...)...)
}

func (a *Animator) MoveTo(entry *donburi.Entry, x, y, duration float64, fn ease.TweenFunc, opts ...tween.Option) *tween.Handle {
	return a.play(entry, "", tween.To(PositionChannel(entry), duration, fn, x, y), opts)
}

func (a *Animator) ScaleTo(entry *donburi.Entry, sx, sy, duration float64, fn ease.TweenFunc, opts ...tween.Option) *tween.Handle {
	return a.play(entry, "", tween.To(ScaleChannel(entry), duration, fn, sx, sy), opts)
}

func (a *Animator) RotateTo(entry *donburi.Entry, radians, duration float64, fn ease.TweenFunc, opts ...tween.Option) *tween.Handle {
	return a.play(entry, "", tween.To(RotationChannel(entry), duration, fn, radians), opts)
}

func (a *Animator) FadeTo(entry *donburi.Entry, alpha, duration float64, fn ease.TweenFunc, opts ...tween.Option) *tween.Handle {
	return a.play(entry, "", tween.To(AlphaChannel(entry), duration, fn, alpha), opts)
}

// PopIn grows the entity from nothing past full size and settles back,
// fading in on the way.
func (a *Animator) PopIn(entry *donburi.Entry, opts ...tween.Option) *tween.Handle {
	d := a.Cfg.PopInDuration
	over := a.Cfg.PopInOvershoot
	scale := ScaleChannel(entry)
	track := tween.Parallel(
		tween.Sequence(
			tween.FromTo(scale, d*0.7, ease.OutQuad, []float64{0, 0}, []float64{over, over}),
			tween.To(scale, d*0.3, ease.InOutQuad, 1, 1),
		),
		tween.FromTo(AlphaChannel(entry), d*0.5, ease.Linear, []float64{0}, []float64{1}),
	)
	return a.play(entry, a.Cfg.EffectsGroup, track, opts)
}

// Shake jitters the entity around its current position with decaying
// amplitude and puts it back where it started.
func (a *Animator) Shake(entry *donburi.Entry, intensity, duration float64, opts ...tween.Option) *tween.Handle {
	steps := max(a.Cfg.ShakeSteps, 1)
	obj := components.Object.Get(entry)
	ox, oy := obj.X, obj.Y
	pos := PositionChannel(entry)
	step := duration / float64(steps+1)

	tracks := make([]tween.Track, 0, steps+1)
	for i := 0; i < steps; i++ {
		amp := intensity * (1 - float64(i)/float64(steps))
		sign := 1.0
		if i%2 == 1 {
			sign = -1
		}
		tracks = append(tracks, tween.To(pos, step, ease.InOutQuad, ox+sign*amp, oy-sign*amp*0.5))
	}
	tracks = append(tracks, tween.To(pos, step, ease.OutQuad, ox, oy))
	return a.play(entry, a.Cfg.EffectsGroup, tween.Sequence(tracks...), opts)
}

// Pulse breathes the scale up and back times times; a negative count
// pulses until killed.
func (a *Animator) Pulse(entry *donburi.Entry, times int, opts ...tween.Option) *tween.Handle {
	half := a.Cfg.PulsePeriod / 2
	s := a.Cfg.PulseScale
	scale := ScaleChannel(entry)
	track := tween.Repeat(tween.Sequence(
		tween.To(scale, half, ease.InOutSine, s, s),
		tween.To(scale, half, ease.InOutSine, 1, 1),
	), times)
	return a.play(entry, a.Cfg.EffectsGroup, track, opts)
}

// Show fades and scales an element in.
func (a *Animator) Show(entry *donburi.Entry, opts ...tween.Option) *tween.Handle {
	d := a.Cfg.UIShowDuration
	hidden := a.Cfg.UIHiddenScale
	track := tween.Parallel(
		tween.FromTo(AlphaChannel(entry), d, ease.OutQuad, []float64{0}, []float64{1}),
		tween.FromTo(ScaleChannel(entry), d, ease.OutBack, []float64{hidden, hidden}, []float64{1, 1}),
	)
	return a.play(entry, a.Cfg.UIGroup, track, opts)
}

// Hide is the reverse of Show, starting from wherever the element is.
func (a *Animator) Hide(entry *donburi.Entry, opts ...tween.Option) *tween.Handle {
	d := a.Cfg.UIHideDuration
	hidden := a.Cfg.UIHiddenScale
	track := tween.Parallel(
		tween.To(AlphaChannel(entry), d, ease.InQuad, 0),
		tween.To(ScaleChannel(entry), d, ease.InQuad, hidden, hidden),
	)
	return a.play(entry, a.Cfg.UIGroup, track, opts)
}

// SquashStretch snaps the scale to (sx, sy) and springs back to rest. A new
// squash on the same entity replaces the running one.
func (a *Animator) SquashStretch(entry *donburi.Entry, sx, sy float64) *tween.Handle {
	a.squash.sweep()
	id := entry.Entity()
	if prev, ok := a.squash[id]; ok {
		prev.Kill()
	}
	d := a.Cfg.SquashDuration
	scale := ScaleChannel(entry)
	track := tween.Sequence(
		tween.To(scale, d*0.25, ease.OutQuad, sx, sy),
		tween.To(scale, d*0.75, ease.OutBack, 1, 1),
	)
	h := a.play(entry, a.Cfg.HitGroup, track, nil)
	a.squash.track(id, h)
	return h
}

// Rattle shakes the entity unless it is already rattling, in which case the
// running handle is returned. Overlapping shakes would each take the other's
// offset as their rest position.
func (a *Animator) Rattle(entry *donburi.Entry, intensity, duration float64) *tween.Handle {
	a.rattles.sweep()
	id := entry.Entity()
	if prev, ok := a.rattles[id]; ok {
		return prev
	}
	h := a.Shake(entry, intensity, duration)
	a.rattles.track(id, h)
	return h
}

// Flash turns the entity white and fades back over duration.
func (a *Animator) Flash(entry *donburi.Entry, duration float64) *tween.Handle {
	track := tween.FromTo(FlashChannel(entry), duration, ease.OutQuad, []float64{1}, []float64{0})
	return a.play(entry, a.Cfg.HitGroup, track, nil)
}

// Forget drops per-entity bookkeeping, used when a session is torn down.
func (a *Animator) Forget() {
	clear(a.squash)
	clear(a.rattles)
}

// UpdateTweens advances every running animation by one fixed step.
func UpdateTweens(e *ecs.ECS) {
	rt := GetRuntime(e)
	rt.Tweens.Update(rt.Dt)
}

// UpdateAnimations advances clip frames of the player and of active pooled
// actors.
func UpdateAnimations(e *ecs.ECS) {
	dt := GetRuntime(e).Dt
	components.Animation.Each(e.World, func(entry *donburi.Entry) {
		if entry.HasComponent(components.Pooled) && !components.Pooled.Get(entry).Active {
			return
		}
		anim := components.Animation.Get(entry)
		if anim.CurrentAnimation != nil {
			anim.CurrentAnimation.Update(dt)
		}
	})
}
