package crdt

// AWORMap is a key set (an AWORSet[K]) paired with a value for each
// live key, where the value type V is itself convergent. Concurrent
// inserts of the same key at different replicas converge through
// V.Merge rather than one replica's write silently clobbering the
// other's.
//
// V must satisfy Convergent[V, D] for some delta type D. Because Go
// generics have no associated types, D is threaded through as its own
// type parameter on AWORMap itself.
type AWORMap[K comparable, V Convergent[V, D], D any] struct {
	keys *AWORSet[K]
	vals map[K]V
	zero func(ReplicaID) V
}

// AWORMapDelta is the delta shape for AWORMap: an optional key-set
// delta (nil if the key set hasn't changed) plus a per-key value
// delta for every value that had one to give.
type AWORMapDelta[K comparable, D any] struct {
	Keys *DotKernel[K]
	Vals map[K]D
}

// NewAWORMap creates an empty map owned by replicaID. zero is the
// default-value factory spec.md §9 calls out as an open question: this
// package resolves it as option (a) — V supplies a construction from a
// ReplicaID, threaded through MergeDelta so it can synthesize a V for a
// key it has never seen locally but has just received a delta for.
// Counter-like values ignore the replica id (see ZeroGCounter,
// ZeroPNCounter); a nested AWORSet or AWORMap would use it to seed its
// own identity.
func NewAWORMap[K comparable, V Convergent[V, D], D any](replicaID ReplicaID, zero func(ReplicaID) V) *AWORMap[K, V, D] {
	return &AWORMap[K, V, D]{
		keys: NewAWORSet[K](replicaID),
		vals: make(map[K]V),
		zero: zero,
	}
}

// Insert adds or replaces the value at k. Concurrent inserts of the
// same key at different replicas are not lost: they converge on merge
// via V.Merge rather than either write overwriting the other.
func (m *AWORMap[K, V, D]) Insert(k K, v V) {
	m.keys.Add(k)
	m.vals[k] = v
}

// Remove retracts k and its value.
func (m *AWORMap[K, V, D]) Remove(k K) {
	m.keys.Remove(k)
	delete(m.vals, k)
}

// Get returns the value at k, if any.
func (m *AWORMap[K, V, D]) Get(k K) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Merge incorporates another replica's full AWORMap: the key sets
// merge first, then every key surviving that merge has its value
// reconciled — both-present values join via V.Merge, single-sided
// values are kept as-is, and values whose key the keys-merge dropped
// are implicitly discarded.
func (m *AWORMap[K, V, D]) Merge(other *AWORMap[K, V, D]) {
	m.keys.Merge(other.keys)

	merged := make(map[K]V, len(m.vals))
	for _, k := range m.keys.Elements() {
		v1, ok1 := m.vals[k]
		v2, ok2 := other.vals[k]
		switch {
		case ok1 && ok2:
			v1.Merge(v2)
			merged[k] = v1
		case ok1:
			merged[k] = v1
		case ok2:
			merged[k] = v2.Clone()
		}
	}
	m.vals = merged
}

// TakeDelta drains the key-set delta and every value's delta, and
// reports false if both are empty (nothing to ship).
func (m *AWORMap[K, V, D]) TakeDelta() (*AWORMapDelta[K, D], bool) {
	keys, haveKeys := m.keys.TakeDelta()

	vals := make(map[K]D)
	for k, v := range m.vals {
		if d, ok := v.TakeDelta(); ok {
			vals[k] = d
		}
	}

	if !haveKeys && len(vals) == 0 {
		return nil, false
	}

	out := &AWORMapDelta[K, D]{Vals: vals}
	if haveKeys {
		out.Keys = keys
	}
	return out, true
}

// MergeDelta applies a delta produced by a peer's TakeDelta. For a key
// present in the resulting key set that has no local value yet, a
// fresh V is synthesized via zero and merged with the incoming value
// delta — the resolution of spec.md §9's open question about
// default-constructing values that need a ReplicaID.
func (m *AWORMap[K, V, D]) MergeDelta(delta *AWORMapDelta[K, D]) {
	if delta.Keys != nil {
		m.keys.MergeDelta(delta.Keys)
	}

	for _, k := range m.keys.Elements() {
		d, haveDelta := delta.Vals[k]
		if !haveDelta {
			continue
		}
		v, ok := m.vals[k]
		if !ok {
			v = m.zero(m.keys.replicaID)
		}
		v.MergeDelta(d)
		m.vals[k] = v
	}
}

// Clone returns a deep copy.
func (m *AWORMap[K, V, D]) Clone() *AWORMap[K, V, D] {
	out := &AWORMap[K, V, D]{
		keys: m.keys.Clone(),
		vals: make(map[K]V, len(m.vals)),
		zero: m.zero,
	}
	for k, v := range m.vals {
		out.vals[k] = v.Clone()
	}
	return out
}
