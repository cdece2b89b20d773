package locker

import "sync"

// Locker tracks runs currently being executed so concurrent cron workers
// never pick up the same run twice.
type Locker struct {
	mu     sync.Mutex
	active map[int64]bool
}

func New() *Locker {
	return &Locker{active: make(map[int64]bool)}
}

// Acquire marks a run as in progress. Check and mark happen under one lock
// so two workers cannot both win the same run.
func (l *Locker) Acquire(runID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active[runID] {
		return false
	}
	l.active[runID] = true
	return true
}

func (l *Locker) Release(runID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.active, runID)
}
