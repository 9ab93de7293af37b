package pool

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/automoto/doomkit/config"
)

// Stats is a read-only snapshot of one pool's usage.
type Stats struct {
	Name    string
	Gets    int // successful acquires
	Misses  int // acquires that returned nil
	Returns int // successful releases
	Active  int
	Idle    int
	Size    int
	MaxSize int
}

type counters struct {
	gets, misses, returns int
}

type poolOptions struct {
	initial    int
	initialSet bool
	max        int
	autoExpand bool
}

// Option overrides one of the configured pool defaults.
type Option func(*poolOptions)

// WithInitialSize sets how many instances are pre-created.
func WithInitialSize(n int) Option {
	return func(o *poolOptions) { o.initial, o.initialSet = n, true }
}

// WithMaxSize caps the total number of instances the pool may own.
func WithMaxSize(n int) Option { return func(o *poolOptions) { o.max = n } }

// WithAutoExpand lets the pool grow past its initial size on demand.
func WithAutoExpand(b bool) Option { return func(o *poolOptions) { o.autoExpand = b } }

// Registry routes acquire and release calls to named pools. It remembers
// which pool every handed-out instance came from, so callers release
// without knowing the name.
type Registry struct {
	cfg    config.PoolConfig
	pools  map[string]*Pool
	owners map[Resource]string // active instances only
	stats  map[string]*counters

	jobs        []*PreloadJob
	timers      []*Timer
	timerOf     map[Resource]*Timer
	sinceShrink float64

	logger *zap.Logger
}

// NewRegistry creates an empty registry using cfg for pool defaults and
// maintenance timing.
func NewRegistry(cfg config.PoolConfig, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		cfg:     cfg,
		pools:   make(map[string]*Pool),
		owners:  make(map[Resource]string),
		stats:   make(map[string]*counters),
		timerOf: make(map[Resource]*Timer),
		logger:  logger,
	}
}

// CreatePool registers a pool under name. Omitted sizes come from the
// registry's configuration.
func (r *Registry) CreatePool(name string, template Template, opts ...Option) error {
	if _, ok := r.pools[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	o := poolOptions{
		initial:    r.cfg.DefaultInitialSize,
		max:        r.cfg.DefaultMaxSize,
		autoExpand: r.cfg.DefaultAutoExpand,
	}
	for _, opt := range opts {
		opt(&o)
	}
	// A default initial size larger than an explicit max is clipped rather
	// than rejected; only explicit contradictions are errors.
	if o.initial > o.max && !o.initialSet {
		o.initial = o.max
	}

	p, err := New(template, o.initial, o.max, o.autoExpand, r.logger)
	if err != nil {
		return fmt.Errorf("create pool %q: %w", name, err)
	}
	p.SetPreloadBatch(r.cfg.PreloadBatch)
	r.pools[name] = p
	r.stats[name] = &counters{}
	r.logger.Debug("pool created",
		zap.String("pool", name),
		zap.Int("initial", o.initial),
		zap.Int("max", o.max),
		zap.Bool("autoExpand", o.autoExpand))
	return nil
}

// Acquire takes an instance from the named pool, places it and activates it.
// Unknown names and exhausted pools return nil.
func (r *Registry) Acquire(name string, x, y, rotation float64) Resource {
	p, ok := r.pools[name]
	if !ok {
		r.logger.Warn("acquire from unknown pool", zap.String("pool", name))
		return nil
	}
	res := p.AcquireWith(func(res Resource) {
		if pl, ok := res.(Placer); ok {
			pl.Place(x, y, rotation)
		}
	})
	st := r.stats[name]
	if res == nil {
		st.misses++
		return nil
	}
	st.gets++
	r.owners[res] = name
	return res
}

// Release hands an instance back to the pool it came from. Untracked
// instances (already released, or never pooled) are logged and ignored.
func (r *Registry) Release(res Resource) bool {
	if res == nil {
		return false
	}
	name, ok := r.owners[res]
	if !ok {
		r.logger.Warn("release of untracked resource")
		return false
	}
	delete(r.owners, res)
	r.cancelTimer(res)

	if rs, ok := res.(Resetter); ok {
		rs.ResetState()
	}
	if h, ok := res.(ReturnHook); ok {
		h.OnReturnedToPool()
	}
	if r.pools[name].Release(res) {
		r.stats[name].returns++
	}
	return true
}

// ReleaseAfter schedules res to be released after delay seconds of Update
// time. Scheduling again replaces the earlier timer. Untracked instances
// return nil.
func (r *Registry) ReleaseAfter(res Resource, delay float64) *Timer {
	if _, ok := r.owners[res]; !ok {
		r.logger.Warn("auto-return scheduled for untracked resource")
		return nil
	}
	r.cancelTimer(res)
	t := &Timer{res: res, remaining: delay}
	r.timers = append(r.timers, t)
	r.timerOf[res] = t
	return t
}

// Preload queues a cooperative top-up of the named pool, advanced by Update.
func (r *Registry) Preload(name string, count int) (*PreloadJob, error) {
	p, ok := r.pools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPool, name)
	}
	j := p.Preload(count)
	if !j.Done() {
		r.jobs = append(r.jobs, j)
	}
	return j, nil
}

// Update advances preload jobs by one batch each, fires due auto-return
// timers and runs shrink maintenance on its configured interval.
func (r *Registry) Update(dt float64) {
	if len(r.jobs) > 0 {
		jobs := r.jobs[:0]
		for _, j := range r.jobs {
			if !j.Step() {
				jobs = append(jobs, j)
			}
		}
		clear(r.jobs[len(jobs):])
		r.jobs = jobs
	}

	if len(r.timers) > 0 {
		var due []*Timer
		for _, t := range r.timers {
			if t.advance(dt) {
				due = append(due, t)
			}
		}
		for _, t := range due {
			delete(r.timerOf, t.res)
			r.Release(t.res)
		}
		r.compactTimers()
	}

	if r.cfg.ShrinkInterval > 0 {
		r.sinceShrink += dt
		if r.sinceShrink >= r.cfg.ShrinkInterval {
			r.sinceShrink = 0
			r.Shrink()
		}
	}
}

// Shrink trims idle excess in every pool and returns the total destroyed.
func (r *Registry) Shrink() int {
	total := 0
	for _, name := range r.Names() {
		total += r.pools[name].ShrinkIdle(r.cfg.KeepFloor)
	}
	if total > 0 {
		r.logger.Debug("pool maintenance", zap.Int("destroyed", total))
	}
	return total
}

// Stats returns the usage snapshot of one pool.
func (r *Registry) Stats(name string) (Stats, bool) {
	p, ok := r.pools[name]
	if !ok {
		return Stats{}, false
	}
	c := r.stats[name]
	return Stats{
		Name:    name,
		Gets:    c.gets,
		Misses:  c.misses,
		Returns: c.returns,
		Active:  p.ActiveCount(),
		Idle:    p.IdleCount(),
		Size:    p.Size(),
		MaxSize: p.MaxSize(),
	}, true
}

// AllStats returns a snapshot for every pool, ordered by name.
func (r *Registry) AllStats() []Stats {
	names := r.Names()
	out := make([]Stats, 0, len(names))
	for _, name := range names {
		s, _ := r.Stats(name)
		out = append(out, s)
	}
	return out
}

// DestroyPool tears down one pool, forgetting its active instances.
func (r *Registry) DestroyPool(name string) error {
	p, ok := r.pools[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPool, name)
	}
	for res, owner := range r.owners {
		if owner == name {
			delete(r.owners, res)
			r.cancelTimer(res)
		}
	}
	for _, j := range r.jobs {
		if j.pool == p {
			j.Cancel()
		}
	}
	p.Clear()
	delete(r.pools, name)
	delete(r.stats, name)
	r.compactTimers()
	return nil
}

// Clear destroys every pool.
func (r *Registry) Clear() {
	for _, name := range r.Names() {
		_ = r.DestroyPool(name)
	}
	r.jobs = nil
	r.timers = nil
	r.sinceShrink = 0
}

// Owner returns the pool name of an active instance.
func (r *Registry) Owner(res Resource) (string, bool) {
	name, ok := r.owners[res]
	return name, ok
}

// Pool returns the named pool.
func (r *Registry) Pool(name string) (*Pool, bool) {
	p, ok := r.pools[name]
	return p, ok
}

// Has reports whether a pool is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.pools[name]
	return ok
}

// Names returns the registered pool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.pools))
	for name := range r.pools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PendingJobs is the number of preload jobs still running.
func (r *Registry) PendingJobs() int { return len(r.jobs) }

func (r *Registry) cancelTimer(res Resource) {
	if t, ok := r.timerOf[res]; ok {
		t.Cancel()
		delete(r.timerOf, res)
	}
}

func (r *Registry) compactTimers() {
	live := r.timers[:0]
	for _, t := range r.timers {
		if !t.Stopped() {
			live = append(live, t)
		}
	}
	clear(r.timers[len(live):])
	r.timers = live
}
