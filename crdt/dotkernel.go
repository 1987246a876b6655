package crdt

// DotKernel is the shared substrate for add-wins semantics: every
// element occurrence is tagged with a unique Dot, and removing an
// element means forgetting its dot from entries while the context
// still remembers the dot happened — that retained memory is what
// stops a late-arriving merge from resurrecting a removal.
type DotKernel[E comparable] struct {
	context *DotContext
	entries map[Dot]E
}

// NewDotKernel creates an empty kernel.
func NewDotKernel[E comparable]() *DotKernel[E] {
	return &DotKernel[E]{
		context: NewDotContext(),
		entries: make(map[Dot]E),
	}
}

// Values returns the kernel's active elements in no particular order.
func (k *DotKernel[E]) Values() []E {
	out := make([]E, 0, len(k.entries))
	for _, v := range k.entries {
		out = append(out, v)
	}
	return out
}

// Contains scans entries for a matching value. Linear in entry count,
// which is fine: element sets here are small and comparison is an
// ordinary Go equality check, not a network round trip.
func (k *DotKernel[E]) Contains(e E) bool {
	for _, v := range k.entries {
		if v == e {
			return true
		}
	}
	return false
}

// Add mints a fresh dot for replica r, records e under it, and mirrors
// the same insertion into delta so the caller can ship just this
// change.
func (k *DotKernel[E]) Add(r ReplicaID, e E, delta *DotKernel[E]) Dot {
	d := k.context.NextDot(r)
	k.entries[d] = e

	delta.entries[d] = e
	delta.context.add(d)
	delta.context.compact()

	return d
}

// Remove erases every dot currently holding e from entries and records
// each one as observed-but-retracted in delta's context, so a peer
// merging delta knows to drop e unless it has a fresher dot of its own.
func (k *DotKernel[E]) Remove(e E, delta *DotKernel[E]) {
	for d, v := range k.entries {
		if v == e {
			delete(k.entries, d)
			delta.context.add(d)
		}
	}
	delta.context.compact()
}

// Merge incorporates another kernel: entries unseen by self and not
// already retracted by self's context are added; entries self holds
// that other's context has observed-and-dropped are removed. Contexts
// are merged last so the comparisons above see pre-merge state.
func (k *DotKernel[E]) Merge(other *DotKernel[E]) {
	var toRemove []Dot
	for d := range k.entries {
		if other.context.Contains(d) {
			if _, stillPresent := other.entries[d]; !stillPresent {
				toRemove = append(toRemove, d)
			}
		}
	}

	for d, v := range other.entries {
		if _, seen := k.entries[d]; !seen && !k.context.Contains(d) {
			k.entries[d] = v
		}
	}

	for _, d := range toRemove {
		delete(k.entries, d)
	}

	k.context.Merge(other.context)
}

// Clone returns a deep copy.
func (k *DotKernel[E]) Clone() *DotKernel[E] {
	out := &DotKernel[E]{
		context: k.context.Clone(),
		entries: make(map[Dot]E, len(k.entries)),
	}
	for d, v := range k.entries {
		out.entries[d] = v
	}
	return out
}

// isEmpty reports whether the kernel carries no entries and no causal
// history at all — used to decide whether a delta is worth shipping.
func (k *DotKernel[E]) isEmpty() bool {
	return len(k.entries) == 0 && len(k.context.clock) == 0 && len(k.context.dots) == 0
}
