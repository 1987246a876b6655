package crdt

// AWORSet is an add-wins observed-remove set: when an add and a remove
// of the same element race across replicas, the add wins on merge,
// because the add carries a fresh dot the remover never saw. It is
// built directly on DotKernel and buffers the changes made since the
// last TakeDelta so a host can ship a compact delta instead of the
// whole state.
type AWORSet[E comparable] struct {
	replicaID ReplicaID
	state     *DotKernel[E]
	delta     *DotKernel[E]
}

// NewAWORSet creates an empty set owned by replicaID.
func NewAWORSet[E comparable](replicaID ReplicaID) *AWORSet[E] {
	return &AWORSet[E]{
		replicaID: replicaID,
		state:     NewDotKernel[E](),
		delta:     NewDotKernel[E](),
	}
}

// Add inserts e. Any occurrence this replica already holds is removed
// first so that repeated local re-adds of the same element don't pile
// up stale dots in entries; the new occurrence gets a fresh dot.
func (s *AWORSet[E]) Add(e E) {
	s.state.Remove(e, s.delta)
	s.state.Add(s.replicaID, e, s.delta)
}

// Remove retracts every occurrence of e this replica currently holds.
func (s *AWORSet[E]) Remove(e E) {
	s.state.Remove(e, s.delta)
}

// Contains reports whether e is currently a member.
func (s *AWORSet[E]) Contains(e E) bool {
	return s.state.Contains(e)
}

// Elements returns the current membership in no particular order.
func (s *AWORSet[E]) Elements() []E {
	seen := make(map[E]struct{})
	out := make([]E, 0)
	for _, v := range s.state.Values() {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Merge incorporates another replica's full AWORSet: both the settled
// state and its unflushed delta are merged, so a bidirectional
// full-state exchange also carries across changes the peer hasn't
// shipped as a delta yet.
func (s *AWORSet[E]) Merge(other *AWORSet[E]) {
	s.delta.Merge(other.delta)
	s.state.Merge(other.state)
}

// TakeDelta atomically swaps the delta buffer for an empty one and
// returns what had accumulated, or false if nothing changed since the
// last call.
func (s *AWORSet[E]) TakeDelta() (*DotKernel[E], bool) {
	if s.delta.isEmpty() {
		return nil, false
	}
	d := s.delta
	s.delta = NewDotKernel[E]()
	return d, true
}

// MergeDelta applies a delta received from a peer. The delta is merged
// into both state and this replica's own delta buffer: the latter
// means a relay that gossips deltas onward will re-ship what it just
// received on its next TakeDelta, which is the point for fanout but
// worth knowing about in a strict point-to-point topology.
func (s *AWORSet[E]) MergeDelta(delta *DotKernel[E]) {
	s.delta.Merge(delta)
	s.state.Merge(delta)
}

// Clone returns a deep copy.
func (s *AWORSet[E]) Clone() *AWORSet[E] {
	return &AWORSet[E]{
		replicaID: s.replicaID,
		state:     s.state.Clone(),
		delta:     s.delta.Clone(),
	}
}
