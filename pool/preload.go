package pool

import "go.uber.org/zap"

// PreloadJob tops a pool up in small batches, one batch per Step, so a large
// warm-up never stalls a single tick.
type PreloadJob struct {
	pool       *Pool
	target     int
	generation int
	built      int
	done       bool
}

// Preload starts a job that grows the pool toward min(maxSize, size+count).
// The job does nothing until stepped.
func (p *Pool) Preload(count int) *PreloadJob {
	j := &PreloadJob{
		pool:       p,
		target:     min(p.maxSize, len(p.all)+count),
		generation: p.generation,
	}
	if count <= 0 || len(p.all) >= j.target {
		j.done = true
	}
	return j
}

// Step builds at most one batch and reports whether the job has finished.
func (j *PreloadJob) Step() bool {
	if j.done {
		return true
	}
	p := j.pool
	if p.generation != j.generation {
		j.done = true
		return true
	}
	for n := 0; n < p.batch && len(p.all) < j.target; n++ {
		if !p.grow() {
			j.done = true
			break
		}
		j.built++
	}
	if len(p.all) >= j.target {
		j.done = true
	}
	if j.done {
		p.logger.Debug("preload finished", zap.Int("built", j.built), zap.Int("size", len(p.all)))
	}
	return j.done
}

// Cancel stops the job. Cancelling twice is a no-op.
func (j *PreloadJob) Cancel() {
	j.done = true
}

// Done reports whether the job finished or was cancelled.
func (j *PreloadJob) Done() bool { return j.done }

// Built is the number of instances this job has constructed so far.
func (j *PreloadJob) Built() int { return j.built }

// Pool returns the pool being filled.
func (j *PreloadJob) Pool() *Pool { return j.pool }
