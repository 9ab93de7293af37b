// Package tween drives time-based property animation on top of gween and
// keeps the bookkeeping for every running animation: groups, targets and
// exactly-once retirement.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Track is one node of an animation tree. Tracks are built with To, FromTo,
// Value, Delay, Call, Sequence, Parallel and Repeat, then started with
// Coordinator.Play.
type Track interface {
	// update advances by dt seconds. When the track finishes it returns the
	// part of dt it did not need, so sequences carry the remainder forward.
	update(dt float32) (leftover float32, done bool)
	// reset rewinds the track so it can run again.
	reset()
}

// Channel reads and writes the values of one animated property, for
// example the X and Y of a position.
type Channel struct {
	Get func() []float64
	Set func(values []float64)
}

type propTrack struct {
	ch       Channel
	from     []float64
	to       []float64
	fixed    bool // from was given explicitly
	duration float32
	easing   ease.TweenFunc

	tweens []*gween.Tween
	buf    []float64
}

// To animates a channel from its value at start time to the given values.
func To(ch Channel, duration float64, fn ease.TweenFunc, to ...float64) Track {
	return &propTrack{ch: ch, to: to, duration: float32(duration), easing: orLinear(fn)}
}

// FromTo animates a channel between two fixed value sets.
func FromTo(ch Channel, duration float64, fn ease.TweenFunc, from, to []float64) Track {
	return &propTrack{ch: ch, from: from, to: to, fixed: true, duration: float32(duration), easing: orLinear(fn)}
}

// Value animates a single number and hands each step to set.
func Value(from, to, duration float64, fn ease.TweenFunc, set func(float64)) Track {
	ch := Channel{Set: func(v []float64) { set(v[0]) }}
	return FromTo(ch, duration, fn, []float64{from}, []float64{to})
}

func (t *propTrack) start() {
	if !t.fixed {
		t.from = append(t.from[:0], t.ch.Get()...)
	}
	n := min(len(t.from), len(t.to))
	t.tweens = make([]*gween.Tween, n)
	for i := 0; i < n; i++ {
		t.tweens[i] = gween.New(float32(t.from[i]), float32(t.to[i]), t.duration, t.easing)
	}
	t.buf = make([]float64, n)
}

func (t *propTrack) update(dt float32) (float32, bool) {
	if t.tweens == nil {
		t.start()
	}
	if t.duration <= 0 {
		t.ch.Set(append(t.buf[:0], t.to[:len(t.tweens)]...))
		return dt, true
	}

	done := true
	var over float32
	for i, tw := range t.tweens {
		v, finished := tw.Update(dt)
		t.buf[i] = float64(v)
		if !finished {
			done = false
		}
		over = tw.Overflow
	}
	if done {
		// land exactly on the target rather than on its float32 image
		copy(t.buf, t.to)
	}
	t.ch.Set(t.buf)
	if !done {
		return 0, false
	}
	return max(over, 0), true
}

func (t *propTrack) reset() {
	t.tweens = nil
}

type delayTrack struct {
	duration float32
	elapsed  float32
}

// Delay waits for the given number of seconds.
func Delay(seconds float64) Track {
	return &delayTrack{duration: float32(seconds)}
}

func (d *delayTrack) update(dt float32) (float32, bool) {
	d.elapsed += dt
	if d.elapsed < d.duration {
		return 0, false
	}
	return d.elapsed - d.duration, true
}

func (d *delayTrack) reset() { d.elapsed = 0 }

type callTrack struct {
	fn     func()
	called bool
}

// Call runs fn once when reached and finishes immediately.
func Call(fn func()) Track {
	return &callTrack{fn: fn}
}

func (c *callTrack) update(dt float32) (float32, bool) {
	if !c.called {
		c.called = true
		if c.fn != nil {
			c.fn()
		}
	}
	return dt, true
}

func (c *callTrack) reset() { c.called = false }

type sequenceTrack struct {
	tracks []Track
	index  int
}

// Sequence runs tracks one after another.
func Sequence(tracks ...Track) Track {
	return &sequenceTrack{tracks: tracks}
}

func (s *sequenceTrack) update(dt float32) (float32, bool) {
	for s.index < len(s.tracks) {
		left, done := s.tracks[s.index].update(dt)
		if !done {
			return 0, false
		}
		s.index++
		dt = left
	}
	return dt, true
}

func (s *sequenceTrack) reset() {
	for _, t := range s.tracks {
		t.reset()
	}
	s.index = 0
}

type parallelTrack struct {
	tracks []Track
	done   []bool
}

// Parallel runs tracks together and finishes when the longest one does.
func Parallel(tracks ...Track) Track {
	return &parallelTrack{tracks: tracks, done: make([]bool, len(tracks))}
}

func (p *parallelTrack) update(dt float32) (float32, bool) {
	all := true
	left := dt
	for i, t := range p.tracks {
		if p.done[i] {
			continue
		}
		l, finished := t.update(dt)
		if !finished {
			all = false
			continue
		}
		p.done[i] = true
		left = min(left, l)
	}
	if !all {
		return 0, false
	}
	return left, true
}

func (p *parallelTrack) reset() {
	for i, t := range p.tracks {
		t.reset()
		p.done[i] = false
	}
}

type repeatTrack struct {
	track Track
	times int // negative repeats forever
	count int
}

// Repeat runs track the given number of times; a negative count loops until
// the handle is killed.
func Repeat(track Track, times int) Track {
	return &repeatTrack{track: track, times: times}
}

func (r *repeatTrack) update(dt float32) (float32, bool) {
	if r.times == 0 {
		return dt, true
	}
	for {
		left, done := r.track.update(dt)
		if !done {
			return 0, false
		}
		r.count++
		if r.times > 0 && r.count >= r.times {
			return left, true
		}
		r.track.reset()
		// a lap that consumed no time waits for the next tick
		if left <= 0 || left >= dt {
			return 0, false
		}
		dt = left
	}
}

func (r *repeatTrack) reset() {
	r.track.reset()
	r.count = 0
}

func orLinear(fn ease.TweenFunc) ease.TweenFunc {
	if fn == nil {
		return ease.Linear
	}
	return fn
}
