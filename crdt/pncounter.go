package crdt

// PNCounter supports both increment and decrement by pairing two
// GCounters: pos tallies increments, neg tallies decrements, and the
// observable value is their signed difference.
type PNCounter struct {
	pos *GCounter
	neg *GCounter
}

// NewPNCounter creates a counter at zero.
func NewPNCounter() *PNCounter {
	return &PNCounter{pos: NewGCounter(), neg: NewGCounter()}
}

// Inc records an increment attributed to r.
func (c *PNCounter) Inc(r ReplicaID) {
	c.pos.Inc(r)
}

// Dec records a decrement attributed to r.
func (c *PNCounter) Dec(r ReplicaID) {
	c.neg.Inc(r)
}

// Value returns pos - neg as a signed integer; it may be negative.
func (c *PNCounter) Value() int64 {
	return int64(c.pos.Value()) - int64(c.neg.Value())
}

// Merge merges both halves componentwise; neither half ever shrinks.
func (c *PNCounter) Merge(other *PNCounter) {
	c.pos.Merge(other.pos)
	c.neg.Merge(other.neg)
}

// MergeDelta for PNCounter is just Merge: the whole pair is its own
// delta representation.
func (c *PNCounter) MergeDelta(delta *PNCounter) {
	c.Merge(delta)
}

// TakeDelta returns a clone of the full counter.
func (c *PNCounter) TakeDelta() (*PNCounter, bool) {
	return c.Clone(), true
}

// Clone returns a deep copy.
func (c *PNCounter) Clone() *PNCounter {
	return &PNCounter{pos: c.pos.Clone(), neg: c.neg.Clone()}
}

// ZeroPNCounter is the AWORMap default-value factory for PNCounter.
// Like GCounter, it carries no replica-tied identity.
func ZeroPNCounter(ReplicaID) *PNCounter {
	return NewPNCounter()
}
