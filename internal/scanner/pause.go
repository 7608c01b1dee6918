package scanner

import (
	"sync"
	"time"
)

// Pauser is a cooperative pause gate for probe workers. Workers call
// Wait between probes; while paused the call blocks, otherwise it costs
// a mutex lock and a bool check.
type Pauser struct {
	mu          sync.Mutex
	cond        *sync.Cond
	paused      bool
	pausedSince time.Time
	totalPaused time.Duration
}

// NewPauser creates a Pauser in the running state.
func NewPauser() *Pauser {
	p := &Pauser{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Wait blocks the calling worker while the scan is paused.
func (p *Pauser) Wait() {
	p.mu.Lock()
	for p.paused {
		p.cond.Wait()
	}
	p.mu.Unlock()
}

// Toggle flips between paused and running and returns the new state
// (true = now paused).
func (p *Pauser) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.totalPaused += time.Since(p.pausedSince)
		p.paused = false
		p.cond.Broadcast()
	} else {
		p.paused = true
		p.pausedSince = time.Now()
	}
	return p.paused
}

// IsPaused reports whether the scan is currently paused.
func (p *Pauser) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// PausedDuration returns the accumulated time spent paused, including
// an ongoing pause.
func (p *Pauser) PausedDuration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	d := p.totalPaused
	if p.paused {
		d += time.Since(p.pausedSince)
	}
	return d
}
