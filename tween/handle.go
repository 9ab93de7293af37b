package tween

// State is where a handle is in its lifecycle.
type State int

const (
	Running State = iota
	Completed
	Killed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Killed:
		return "killed"
	}
	return "unknown"
}

// Target is a weak reference to whatever a tween animates. Once Alive
// reports false the tween is dropped without running any callbacks.
type Target interface {
	Alive() bool
}

// Handle is one running animation registered with a Coordinator. It leaves
// Running exactly once, either by completing or by being killed; later
// triggers are no-ops. All methods are safe on a nil handle.
type Handle struct {
	id     uint64
	track  Track
	state  State
	paused bool
	group  string
	target Target

	onComplete []func()
	onKill     []func()

	coord *Coordinator
}

// ID is unique per coordinator and increases with start order.
func (h *Handle) ID() uint64 {
	if h == nil {
		return 0
	}
	return h.id
}

func (h *Handle) State() State {
	if h == nil {
		return Killed
	}
	return h.state
}

// Running reports whether the handle has neither completed nor been killed.
func (h *Handle) Running() bool { return h != nil && h.state == Running }

func (h *Handle) Paused() bool { return h != nil && h.paused }

func (h *Handle) Group() string {
	if h == nil {
		return ""
	}
	return h.group
}

func (h *Handle) Target() Target {
	if h == nil {
		return nil
	}
	return h.target
}

// Pause freezes the handle in place.
func (h *Handle) Pause() {
	if h.Running() {
		h.paused = true
	}
}

// Resume continues a paused handle.
func (h *Handle) Resume() {
	if h.Running() {
		h.paused = false
	}
}

// Kill stops the handle and runs its kill callbacks.
func (h *Handle) Kill() {
	if h == nil || h.coord == nil {
		return
	}
	h.coord.retire(h, Killed, true)
}

// OnComplete registers fn to run when the handle finishes naturally.
// Callbacks added after retirement are dropped.
func (h *Handle) OnComplete(fn func()) *Handle {
	if h.Running() && fn != nil {
		h.onComplete = append(h.onComplete, fn)
	}
	return h
}

// OnKill registers fn to run when the handle is killed.
func (h *Handle) OnKill(fn func()) *Handle {
	if h.Running() && fn != nil {
		h.onKill = append(h.onKill, fn)
	}
	return h
}

func (h *Handle) targetDead() bool {
	return h.target != nil && !h.target.Alive()
}
