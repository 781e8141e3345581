package orchestrator

import "sync"

// Progress holds the aggregate run counters. The orchestrator is the only
// writer; reporting collaborators read snapshots.
type Progress struct {
	mu        sync.Mutex
	total     int
	completed int
	succeeded int
	failed    int
	current   string
}

// Snapshot is a read-only copy of the counters.
type Snapshot struct {
	Total     int
	Completed int
	Succeeded int
	Failed    int
	Current   string
}

func (p *Progress) setTotal(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = n
}

func (p *Progress) setCurrent(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = name
}

// complete records one terminal outcome. Called exactly once per item.
func (p *Progress) complete(succeeded bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed++
	if succeeded {
		p.succeeded++
	} else {
		p.failed++
	}
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Total:     p.total,
		Completed: p.completed,
		Succeeded: p.succeeded,
		Failed:    p.failed,
		Current:   p.current,
	}
}
