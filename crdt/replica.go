// Package crdt implements the convergent core: a small family of
// state-based CRDTs (Conflict-free Replicated Data Types) that merge
// deterministically regardless of delivery order. Every type here is a
// pure, owned value — no locks, no I/O, no background goroutines. A
// host that wants to share a value across replicas is responsible for
// transporting it (over whatever wire it likes) and for calling Merge
// or MergeDelta on arrival.
package crdt

// ReplicaID uniquely identifies one replica for the lifetime of its
// participation in a CRDT. Two processes must never reuse the same id
// concurrently; the core does not and cannot detect that violation.
type ReplicaID uint64

// Convergent is the contract GCounter, PNCounter, AWORSet and AWORMap
// satisfy: a full-state join, a delta-based join, and a way to harvest
// the changes accumulated since the last TakeDelta. VectorClock and
// ORSet provide Merge but not the delta operations, so they do not
// implement it. T is the CRDT's own type (so Merge takes a sibling of
// the same kind) and D is the shape of its delta, which for the two
// counters is just T itself.
type Convergent[T any, D any] interface {
	// Merge incorporates another replica's full state. Merge must be
	// commutative, associative and idempotent as an observable value.
	Merge(other T)

	// MergeDelta incorporates a delta produced by another replica's
	// TakeDelta. A sequence of MergeDelta calls covering everything a
	// peer has produced converges to the same value as a full Merge.
	MergeDelta(delta D)

	// TakeDelta drains and returns whatever has accumulated since the
	// last call, or reports false if there is nothing to ship. The
	// counters have no delta buffer: they return a snapshot of their
	// whole state and true on every call.
	TakeDelta() (D, bool)

	// Clone returns a deep, independently-owned copy. Every CRDT in
	// this package is a self-contained aggregate with no internal
	// aliasing, so merges never need to share structure across a
	// replica boundary.
	Clone() T
}
