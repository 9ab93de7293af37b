package tween

import (
	"sort"

	"go.uber.org/zap"
)

// Option configures a handle at Play time.
type Option func(*Handle)

// WithTarget ties the handle to a weakly referenced target.
func WithTarget(t Target) Option {
	return func(h *Handle) { h.target = t }
}

// InGroup tags the handle for bulk pause, play and kill.
func InGroup(name string) Option {
	return func(h *Handle) { h.group = name }
}

// Coordinator owns every running handle. It is not safe for concurrent use;
// everything runs on the game loop.
type Coordinator struct {
	nextID  uint64
	running []*Handle // start order, may hold retired handles until compacted
	live    map[*Handle]struct{}
	groups  map[string]map[*Handle]struct{}

	logger *zap.Logger
}

func NewCoordinator(logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		live:   make(map[*Handle]struct{}),
		groups: make(map[string]map[*Handle]struct{}),
		logger: logger,
	}
}

// Play registers track and starts it on the next Update. Playing against a
// target that is already gone returns a killed handle.
func (c *Coordinator) Play(track Track, opts ...Option) *Handle {
	c.nextID++
	h := &Handle{id: c.nextID, track: track, coord: c}
	for _, opt := range opts {
		opt(h)
	}
	if track == nil || (h.target != nil && !h.target.Alive()) {
		h.state = Killed
		return h
	}

	c.running = append(c.running, h)
	c.live[h] = struct{}{}
	if h.group != "" {
		g, ok := c.groups[h.group]
		if !ok {
			g = make(map[*Handle]struct{})
			c.groups[h.group] = g
		}
		g[h] = struct{}{}
	}
	return h
}

// Update advances every running, unpaused handle by dt seconds. Handles
// whose target died are dropped silently, paused ones included.
func (c *Coordinator) Update(dt float64) {
	c.compact()
	snap := c.snapshot()
	for _, h := range snap {
		if h.state != Running {
			continue
		}
		if h.targetDead() {
			c.retire(h, Killed, false)
			continue
		}
		if h.paused {
			continue
		}
		if _, done := h.track.update(float32(dt)); done {
			c.retire(h, Completed, true)
		}
	}
	c.compact()
}

// KillGroup kills every handle in the group; the group disappears with its
// last member.
func (c *Coordinator) KillGroup(name string) int {
	members := c.groupMembers(name)
	for _, h := range members {
		c.retire(h, Killed, true)
	}
	return len(members)
}

// PauseGroup pauses every handle in the group.
func (c *Coordinator) PauseGroup(name string) {
	for _, h := range c.groupMembers(name) {
		h.Pause()
	}
}

// PlayGroup resumes every paused handle in the group.
func (c *Coordinator) PlayGroup(name string) {
	for _, h := range c.groupMembers(name) {
		h.Resume()
	}
}

// KillTarget kills every handle animating t.
func (c *Coordinator) KillTarget(t Target) int {
	if t == nil {
		return 0
	}
	n := 0
	snap := c.snapshot()
	for _, h := range snap {
		if h.state == Running && h.target == t {
			c.retire(h, Killed, true)
			n++
		}
	}
	return n
}

// KillAll kills every handle and clears all bookkeeping. Handles started by
// kill callbacks during the sweep are dropped without callbacks.
func (c *Coordinator) KillAll() {
	snap := c.snapshot()
	for _, h := range snap {
		c.retire(h, Killed, true)
	}
	for h := range c.live {
		c.retire(h, Killed, false)
	}
	if n := len(snap); n > 0 {
		c.logger.Debug("killed all tweens", zap.Int("count", n))
	}
	clear(c.running)
	c.running = c.running[:0]
	clear(c.live)
	clear(c.groups)
}

// ActiveCount is the number of handles still running, paused ones included.
func (c *Coordinator) ActiveCount() int { return len(c.live) }

// GroupSize is the number of running handles in a group.
func (c *Coordinator) GroupSize(name string) int { return len(c.groups[name]) }

// HasGroup reports whether the group has at least one running member.
func (c *Coordinator) HasGroup(name string) bool {
	_, ok := c.groups[name]
	return ok
}

// Groups returns the names of non-empty groups in sorted order.
func (c *Coordinator) Groups() []string {
	names := make([]string, 0, len(c.groups))
	for name := range c.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// retire moves h out of Running and deregisters it everywhere. Only the
// first call for a handle has any effect.
func (c *Coordinator) retire(h *Handle, state State, notify bool) {
	if h.state != Running {
		return
	}
	h.state = state
	h.paused = false
	delete(c.live, h)
	if h.group != "" {
		if g, ok := c.groups[h.group]; ok {
			delete(g, h)
			if len(g) == 0 {
				delete(c.groups, h.group)
			}
		}
	}

	callbacks := h.onKill
	if state == Completed {
		callbacks = h.onComplete
	}
	h.onComplete, h.onKill = nil, nil
	if !notify || h.targetDead() {
		return
	}
	for _, fn := range callbacks {
		fn()
	}
}

// snapshot copies the running list so callbacks may start or kill handles
// while a sweep is in progress.
func (c *Coordinator) snapshot() []*Handle {
	return append([]*Handle(nil), c.running...)
}

// groupMembers lists the group in start order. Members whose target died
// are retired on the way without callbacks.
func (c *Coordinator) groupMembers(name string) []*Handle {
	g := c.groups[name]
	members := make([]*Handle, 0, len(g))
	var dead []*Handle
	for h := range g {
		if h.targetDead() {
			dead = append(dead, h)
			continue
		}
		members = append(members, h)
	}
	for _, h := range dead {
		c.retire(h, Killed, false)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].id < members[j].id })
	return members
}

func (c *Coordinator) compact() {
	live := c.running[:0]
	for _, h := range c.running {
		if h.state == Running {
			live = append(live, h)
		}
	}
	clear(c.running[len(live):])
	c.running = live
}
