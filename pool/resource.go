// Package pool recycles short-lived game objects instead of constructing and
// destroying them every time gameplay needs one.
package pool

import "fmt"

// Resource is anything a Pool can hand out and take back. Implementations
// are used as map keys, so they must be comparable (pointer types in practice).
type Resource interface {
	Active() bool
	SetActive(active bool)
}

// Poolable resources are told when they leave and re-enter the idle queue.
type Poolable interface {
	OnAcquire()
	OnRelease()
}

// Placer resources accept a spawn transform before activation.
type Placer interface {
	Place(x, y, rotation float64)
}

// Resetter resources clear transform, velocity and physics state on return.
type Resetter interface {
	ResetState()
}

// Detacher resources drop parent and ownership markers when released.
type Detacher interface {
	Detach()
}

// ReturnHook is called by a Registry once a resource has been handed back,
// before the owning pool re-enqueues it.
type ReturnHook interface {
	OnReturnedToPool()
}

// Slot identifies one instance: the template it was built from plus its
// construction index within the pool.
type Slot struct {
	Template string
	Index    int
}

func (s Slot) String() string {
	return fmt.Sprintf("%s#%d", s.Template, s.Index)
}

// Template builds and tears down instances of one resource kind.
type Template interface {
	Name() string
	New(slot Slot) Resource
	Destroy(r Resource)
}

// FuncTemplate adapts plain functions to Template. Free may be nil.
type FuncTemplate struct {
	ID    string
	Build func(slot Slot) Resource
	Free  func(r Resource)
}

func (t FuncTemplate) Name() string { return t.ID }

func (t FuncTemplate) New(slot Slot) Resource { return t.Build(slot) }

func (t FuncTemplate) Destroy(r Resource) {
	if t.Free != nil {
		t.Free(r)
	}
}
