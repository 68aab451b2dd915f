package crawler

import "sync"

// Tally counts occurrences of external domains. Increments are commutative,
// so any worker interleaving yields the same final counts.
type Tally struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewTally creates an empty Tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Increment adds one occurrence of domain, inserting it at 1 if absent.
func (t *Tally) Increment(domain string) {
	t.mu.Lock()
	t.counts[domain]++
	t.mu.Unlock()
}

// Snapshot returns a copy of the current counts. The coordinator calls it
// only after all workers have exited.
func (t *Tally) Snapshot() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.counts))
	for d, n := range t.counts {
		out[d] = n
	}
	return out
}

// Len reports the number of distinct domains seen so far.
func (t *Tally) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.counts)
}
