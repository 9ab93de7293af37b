package factory

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomkit/archetypes"
	"github.com/automoto/doomkit/components"
	cfg "github.com/automoto/doomkit/config"
	"github.com/automoto/doomkit/pool"
	"github.com/automoto/doomkit/tags"
	"github.com/automoto/doomkit/tween"
)

// Actor is the pool-side handle of a recycled entity. The entity is built
// once by its template and stays in the world until the pool destroys it;
// acquire and release only switch it on and off.
type Actor struct {
	entry  *donburi.Entry
	kind   cfg.ActorKind
	space  *resolv.Space
	tweens *tween.Coordinator
}

func (a *Actor) Entry() *donburi.Entry { return a.entry }

func (a *Actor) Kind() cfg.ActorKind { return a.kind }

func (a *Actor) Active() bool {
	return a.entry.Valid() && components.Pooled.Get(a.entry).Active
}

// SetActive registers solid actors with the collision space while active.
func (a *Actor) SetActive(active bool) {
	if !a.entry.Valid() {
		return
	}
	p := components.Pooled.Get(a.entry)
	if p.Active == active {
		return
	}
	p.Active = active
	if !a.kind.Solid || a.space == nil {
		return
	}
	obj := components.Object.Get(a.entry).Object
	if active {
		a.space.Add(obj)
	} else if obj.Space != nil {
		a.space.Remove(obj)
	}
}

// Place centers the actor on (x, y) and launches it along rotation.
func (a *Actor) Place(x, y, rotation float64) {
	obj := components.Object.Get(a.entry)
	obj.X = x - obj.W/2
	obj.Y = y - obj.H/2
	components.Transform.Get(a.entry).Rotation = rotation

	ph := components.Physics.Get(a.entry)
	ph.SpeedX = math.Cos(rotation) * a.kind.Speed
	ph.SpeedY = math.Sin(rotation) * a.kind.Speed
}

func (a *Actor) ResetState() {
	components.Transform.SetValue(a.entry, components.DefaultTransform())
	components.Physics.SetValue(a.entry, a.restPhysics())
	components.Pooled.Get(a.entry).Age = 0
}

func (a *Actor) Detach() {
	components.Pooled.Get(a.entry).Parent = nil
}

func (a *Actor) OnAcquire() {
	anim := components.Animation.Get(a.entry)
	anim.SetAnimation(a.kind.State)
	if anim.CurrentAnimation != nil {
		anim.CurrentAnimation.Restart()
	}
	components.Pooled.Get(a.entry).Age = 0
}

// OnRelease stops every tween still animating this actor, so nothing
// started during the previous use touches the next one.
func (a *Actor) OnRelease() {
	if a.tweens != nil {
		a.tweens.KillTarget(a)
	}
}

func (a *Actor) OnReturnedToPool() {
	p := components.Pooled.Get(a.entry)
	x, y := a.Position()
	components.Released.Publish(a.entry.World, components.ReleaseEvent{Kind: p.Kind, X: x, Y: y})
}

// Alive makes the actor a weak tween and camera target: it dies the moment
// it goes back to its pool.
func (a *Actor) Alive() bool { return a.Active() }

// Position is the center of the collision box.
func (a *Actor) Position() (float64, float64) {
	obj := components.Object.Get(a.entry)
	return obj.X + obj.W/2, obj.Y + obj.H/2
}

func (a *Actor) restPhysics() components.PhysicsData {
	return components.PhysicsData{
		Gravity:  cfg.Physics.Gravity * a.kind.GravityScale,
		Friction: a.kind.Friction,
	}
}

// ActorTemplate builds pooled actors of one kind into a world.
type ActorTemplate struct {
	ecs    *ecs.ECS
	name   string
	kind   cfg.ActorKind
	space  *resolv.Space
	tweens *tween.Coordinator
}

func NewActorTemplate(e *ecs.ECS, name string, kind cfg.ActorKind, space *resolv.Space, tweens *tween.Coordinator) *ActorTemplate {
	return &ActorTemplate{ecs: e, name: name, kind: kind, space: space, tweens: tweens}
}

func (t *ActorTemplate) Name() string { return t.name }

func (t *ActorTemplate) New(slot pool.Slot) pool.Resource {
	entry := archetypes.PooledActor.Spawn(t.ecs)
	a := &Actor{entry: entry, kind: t.kind, space: t.space, tweens: t.tweens}

	objTags := []string{tags.ResolvActor}
	if t.kind.Solid {
		objTags = append(objTags, tags.ResolvCrate)
	}
	obj := resolv.NewObject(0, 0, t.kind.Width, t.kind.Height, objTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, t.kind.Width, t.kind.Height))
	obj.Data = entry

	components.Object.SetValue(entry, components.ObjectData{Object: obj})
	components.Pooled.SetValue(entry, components.PooledData{
		Resource:      a,
		Slot:          slot,
		Kind:          t.name,
		ReleaseOnLoop: t.kind.ReleaseOnLoop,
	})
	components.Physics.SetValue(entry, a.restPhysics())
	components.Transform.SetValue(entry, components.DefaultTransform())
	components.Animation.Set(entry, components.NewAnimationData("vfx", t.kind.Color))
	return a
}

func (t *ActorTemplate) Destroy(r pool.Resource) {
	a, ok := r.(*Actor)
	if !ok || !a.entry.Valid() {
		return
	}
	if obj := components.Object.Get(a.entry).Object; obj.Space != nil {
		obj.Space.Remove(obj)
	}
	t.ecs.World.Remove(a.entry.Entity())
}
