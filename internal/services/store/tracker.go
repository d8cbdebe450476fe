package store

// Tracker issues per-task mutation generations. The store bumps before each
// optimistic mutation and checks on completion; a round-trip whose generation
// is no longer current is discarded so a slow response can never overwrite a
// newer change. No locking: all issuance happens on the TEA event loop.
type Tracker struct {
	generations map[int64]uint64
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{generations: make(map[int64]uint64)}
}

// Bump increments and returns the generation for a task. The first mutation
// of a task returns 1.
func (t *Tracker) Bump(taskID int64) uint64 {
	t.generations[taskID]++
	return t.generations[taskID]
}

// IsCurrent reports whether gen is still the latest generation issued for
// the task
func (t *Tracker) IsCurrent(taskID int64, gen uint64) bool {
	return t.generations[taskID] == gen
}
