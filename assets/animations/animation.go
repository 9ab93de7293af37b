package animations

// Animation steps through a strip of frames at a fixed rate. Frames are
// drawn procedurally, so an animation is only a frame counter.
type Animation struct {
	First            int
	Last             int
	FPS              float64
	FreezeOnComplete bool // stay on the last frame instead of looping
	Looped           bool // set once the last frame has been passed

	elapsed float64
	frame   int
}

func (a *Animation) Update(dt float64) {
	if a.FPS <= 0 || a.Last < a.First {
		return
	}
	a.elapsed += dt
	step := 1 / a.FPS
	for a.elapsed >= step {
		a.elapsed -= step
		a.frame++
		if a.frame > a.Last {
			a.Looped = true
			if a.FreezeOnComplete {
				a.frame = a.Last
				a.elapsed = 0
				return
			}
			a.frame = a.First
		}
	}
}

func (a *Animation) Frame() int {
	return a.frame
}

// Progress is the position within the strip in [0, 1].
func (a *Animation) Progress() float64 {
	if a.Last <= a.First {
		return 1
	}
	return float64(a.frame-a.First) / float64(a.Last-a.First)
}

func (a *Animation) Restart() {
	a.frame = a.First
	a.elapsed = 0
	a.Looped = false
}

func NewAnimation(first, last int, fps float64) *Animation {
	return &Animation{
		First: first,
		Last:  last,
		FPS:   fps,
		frame: first,
	}
}
