// Package motion drives a single actor's platformer movement: grounding,
// buffered and coyote jumps, multi-jump, variable jump height and
// accelerated horizontal motion. What the actor wants to do comes from an
// IntentSource, so players, scripts and AI share one controller.
package motion

// Intent is one tick of movement input.
type Intent struct {
	MoveX        float64 // -1..1
	JumpPressed  bool    // went down this tick
	JumpHeld     bool
	JumpReleased bool // went up this tick
}

// IntentSource produces the intent for the current tick.
type IntentSource interface {
	Intent() Intent
}

// IntentFunc adapts a function to IntentSource.
type IntentFunc func() Intent

func (f IntentFunc) Intent() Intent { return f() }

// Script replays a queue of intents, one per tick, then idles.
type Script struct {
	steps []Intent
}

// NewScript creates a script from the given steps.
func NewScript(steps ...Intent) *Script {
	return &Script{steps: steps}
}

// Push appends n copies of in.
func (s *Script) Push(in Intent, n int) {
	for i := 0; i < n; i++ {
		s.steps = append(s.steps, in)
	}
}

// Intent pops the next step.
func (s *Script) Intent() Intent {
	if len(s.steps) == 0 {
		return Intent{}
	}
	in := s.steps[0]
	s.steps = s.steps[1:]
	return in
}

// Remaining is the number of queued steps.
func (s *Script) Remaining() int { return len(s.steps) }

// Patrol walks back and forth, turning around when blocked.
type Patrol struct {
	Dir     float64
	Blocked func() bool
}

func (p *Patrol) Intent() Intent {
	if p.Dir == 0 {
		p.Dir = 1
	}
	if p.Blocked != nil && p.Blocked() {
		p.Dir = -p.Dir
	}
	return Intent{MoveX: p.Dir}
}
