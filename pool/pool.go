package pool

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// DefaultPreloadBatch is how many instances a preload step builds.
const DefaultPreloadBatch = 10

// Pool owns every instance built from one Template. An instance is either
// idle (queued for reuse) or active (handed out), never both.
type Pool struct {
	template   Template
	maxSize    int
	autoExpand bool
	batch      int

	queue []Resource // idle instances, FIFO
	idle  map[Resource]struct{}
	all   map[Resource]Slot

	nextSlot   int
	generation int // bumped by Clear so stale preload jobs stop

	logger *zap.Logger
}

// New builds a pool and eagerly constructs initialSize idle instances.
// A nil template is a programming error and panics.
func New(template Template, initialSize, maxSize int, autoExpand bool, logger *zap.Logger) (*Pool, error) {
	if template == nil {
		panic("pool: nil template")
	}
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: %s max size %d must be positive", ErrInvalidConfiguration, template.Name(), maxSize)
	}
	if initialSize < 0 || initialSize > maxSize {
		return nil, fmt.Errorf("%w: %s initial size %d outside [0, %d]", ErrInvalidConfiguration, template.Name(), initialSize, maxSize)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		template:   template,
		maxSize:    maxSize,
		autoExpand: autoExpand,
		batch:      DefaultPreloadBatch,
		queue:      make([]Resource, 0, initialSize),
		idle:       make(map[Resource]struct{}, initialSize),
		all:        make(map[Resource]Slot, initialSize),
		logger:     logger.With(zap.String("pool", template.Name())),
	}
	for i := 0; i < initialSize; i++ {
		p.grow()
	}
	return p, nil
}

// SetPreloadBatch changes how many instances each preload step builds.
func (p *Pool) SetPreloadBatch(n int) {
	if n <= 0 {
		n = DefaultPreloadBatch
	}
	p.batch = n
}

// Acquire hands out an idle instance, building a new one when the queue is
// empty and the pool may still expand. It returns nil when the pool is
// exhausted.
func (p *Pool) Acquire() Resource {
	return p.AcquireWith(nil)
}

// AcquireWith is Acquire with a callback that runs before activation.
func (p *Pool) AcquireWith(prepare func(Resource)) Resource {
	r := p.pop()
	if r == nil {
		if !p.autoExpand || len(p.all) >= p.maxSize {
			p.logger.Warn("pool exhausted",
				zap.Int("size", len(p.all)),
				zap.Int("max", p.maxSize),
				zap.Bool("autoExpand", p.autoExpand))
			return nil
		}
		r = p.construct()
		if r == nil {
			return nil
		}
	}

	if prepare != nil {
		prepare(r)
	}
	r.SetActive(true)
	if h, ok := r.(Poolable); ok {
		h.OnAcquire()
	}
	return r
}

// Release puts an active instance back in the idle queue. Idle or foreign
// instances are ignored. It reports whether r was reclaimed.
func (p *Pool) Release(r Resource) bool {
	if r == nil {
		return false
	}
	if _, ok := p.all[r]; !ok {
		p.logger.Debug("release of foreign resource ignored")
		return false
	}
	if _, idle := p.idle[r]; idle {
		return false
	}

	// Marked first so a reentrant Release from the hooks below is a no-op.
	p.idle[r] = struct{}{}
	r.SetActive(false)
	if d, ok := r.(Detacher); ok {
		d.Detach()
	}
	if h, ok := r.(Poolable); ok {
		h.OnRelease()
	}
	p.queue = append(p.queue, r)
	return true
}

// ShrinkIdle destroys idle instances beyond max(keepFloor, maxSize/4) and
// returns how many were destroyed. Active instances are never touched.
func (p *Pool) ShrinkIdle(keepFloor int) int {
	floor := max(keepFloor, p.maxSize/4)
	destroyed := 0
	for len(p.queue) > floor {
		last := len(p.queue) - 1
		r := p.queue[last]
		p.queue[last] = nil
		p.queue = p.queue[:last]
		delete(p.idle, r)
		delete(p.all, r)
		p.template.Destroy(r)
		destroyed++
	}
	if destroyed > 0 {
		p.logger.Debug("shrank idle instances",
			zap.Int("destroyed", destroyed),
			zap.Int("size", len(p.all)))
	}
	return destroyed
}

// Clear destroys every instance, active or idle, and cancels running
// preload jobs.
func (p *Pool) Clear() {
	for _, r := range p.instances() {
		p.template.Destroy(r)
	}
	for i := range p.queue {
		p.queue[i] = nil
	}
	p.queue = p.queue[:0]
	clear(p.idle)
	clear(p.all)
	p.generation++
}

// Name returns the template name.
func (p *Pool) Name() string { return p.template.Name() }

// Size is the number of live instances, idle or active.
func (p *Pool) Size() int { return len(p.all) }

// IdleCount is the number of queued instances.
func (p *Pool) IdleCount() int { return len(p.queue) }

// ActiveCount is the number of instances currently handed out.
func (p *Pool) ActiveCount() int { return len(p.all) - len(p.queue) }

func (p *Pool) MaxSize() int     { return p.maxSize }
func (p *Pool) AutoExpand() bool { return p.autoExpand }

// Contains reports whether r was built by this pool and is still alive.
func (p *Pool) Contains(r Resource) bool {
	_, ok := p.all[r]
	return ok
}

// IsIdle reports whether r is waiting in the queue.
func (p *Pool) IsIdle(r Resource) bool {
	_, ok := p.idle[r]
	return ok
}

// SlotOf returns the slot r was built in.
func (p *Pool) SlotOf(r Resource) (Slot, bool) {
	s, ok := p.all[r]
	return s, ok
}

func (p *Pool) pop() Resource {
	if len(p.queue) == 0 {
		return nil
	}
	r := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	delete(p.idle, r)
	return r
}

// construct builds one deactivated instance and registers it as active-bound.
func (p *Pool) construct() Resource {
	slot := Slot{Template: p.template.Name(), Index: p.nextSlot}
	p.nextSlot++
	r := p.template.New(slot)
	if r == nil {
		p.logger.Error("template returned nil instance", zap.Stringer("slot", slot))
		return nil
	}
	r.SetActive(false)
	p.all[r] = slot
	return r
}

// grow builds one instance straight into the idle queue.
func (p *Pool) grow() bool {
	r := p.construct()
	if r == nil {
		return false
	}
	p.idle[r] = struct{}{}
	p.queue = append(p.queue, r)
	return true
}

// instances returns every live instance ordered by slot index.
func (p *Pool) instances() []Resource {
	out := make([]Resource, 0, len(p.all))
	for r := range p.all {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return p.all[out[i]].Index < p.all[out[j]].Index
	})
	return out
}
