package action

import "sync/atomic"

// Clock hands out action ids.
//
// Ids are strictly increasing and never reused within one clock, so the
// order in which actions were added is recoverable from their ids and two
// stores built the same way assign the same ids.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// The Store that owns it is not.
type Clock struct {
	seq atomic.Uint64
}

// NewClock creates a clock whose first id is 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock that resumes after start.
func NewClockAt(start uint64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next id.
func (c *Clock) Next() ID {
	return ID(c.seq.Add(1))
}

// Current returns the last id handed out without advancing the clock.
func (c *Clock) Current() ID {
	return ID(c.seq.Load())
}
