package fixture

import (
	"fmt"
	"sync"
	"time"
)

// FixedClock returns a pinned wall time, advancing by Step on every read.
//
// A zero Step pins the clock completely, which keeps recency timestamps and
// backup stamps deterministic. A positive Step lets tests observe ordering
// through ZLASTUSEDDATE without depending on real time.
type FixedClock struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewFixedClock creates a clock pinned at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now returns the current pinned time and advances it by Step.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.Step)
	return t
}

// SeqIdentifiers generates a deterministic identifier sequence
// ("FIXTURE-0001", "FIXTURE-0002", ...) in place of random UUIDs.
type SeqIdentifiers struct {
	mu sync.Mutex
	n  int
}

// Generate returns the next identifier in the sequence.
func (g *SeqIdentifiers) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("FIXTURE-%04d", g.n)
}
