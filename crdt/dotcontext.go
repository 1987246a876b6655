package crdt

import "encoding/json"

// DotContext is a causal history: a compact VectorClock recording
// "every dot (r,1)..(r,n) is known" plus a sparse set of loose dots
// that fall outside any replica's contiguous prefix. Compaction runs
// after every mutation so the loose set never grows without bound.
type DotContext struct {
	clock map[ReplicaID]uint64
	dots  map[Dot]struct{}
}

// dotContextJSON is the wire shape: a dot set doesn't marshal well as
// a Go map (Dot isn't a string), so it round-trips through a slice.
type dotContextJSON struct {
	Clock map[ReplicaID]uint64 `json:"clock"`
	Dots  []Dot                `json:"dots"`
}

// NewDotContext creates an empty causal history.
func NewDotContext() *DotContext {
	return &DotContext{
		clock: make(map[ReplicaID]uint64),
		dots:  make(map[Dot]struct{}),
	}
}

// Contains reports whether d has already been observed, either because
// it falls within the compact clock's covered prefix or because it is
// sitting in the loose dot set.
func (ctx *DotContext) Contains(d Dot) bool {
	if n, ok := ctx.clock[d.Replica]; ok && n >= d.Seq {
		return true
	}
	_, loose := ctx.dots[d]
	return loose
}

// NextDot advances r's clock entry and returns the fresh dot it now
// names. The returned dot is never one already present, by induction
// on the contains invariant.
func (ctx *DotContext) NextDot(r ReplicaID) Dot {
	ctx.clock[r]++
	return Dot{Replica: r, Seq: ctx.clock[r]}
}

// add inserts a dot directly into the loose set, leaving compaction to
// a subsequent call. Used internally by DotKernel when it only knows
// the dot, not which replica is minting it.
func (ctx *DotContext) add(d Dot) {
	ctx.dots[d] = struct{}{}
}

// Merge takes the pointwise max of both clocks, unions the loose dot
// sets, then compacts.
func (ctx *DotContext) Merge(other *DotContext) {
	for r, n := range other.clock {
		if n > ctx.clock[r] {
			ctx.clock[r] = n
		}
	}
	for d := range other.dots {
		ctx.dots[d] = struct{}{}
	}
	ctx.compact()
}

// compact folds any loose dot that now continues its replica's
// contiguous prefix into the clock, and drops any loose dot already
// covered by the clock. It iterates to a fixpoint so dots can arrive
// in any order and still fold into place in one call.
func (ctx *DotContext) compact() {
	for {
		changed := false
		for d := range ctx.dots {
			n := ctx.clock[d.Replica]
			switch {
			case d.Seq == n+1:
				ctx.clock[d.Replica] = d.Seq
				delete(ctx.dots, d)
				changed = true
			case d.Seq <= n:
				delete(ctx.dots, d)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// Clone returns a deep copy.
func (ctx *DotContext) Clone() *DotContext {
	out := NewDotContext()
	for r, n := range ctx.clock {
		out.clock[r] = n
	}
	for d := range ctx.dots {
		out.dots[d] = struct{}{}
	}
	return out
}

// MarshalJSON flattens the loose dot set into a slice.
func (ctx *DotContext) MarshalJSON() ([]byte, error) {
	dots := make([]Dot, 0, len(ctx.dots))
	for d := range ctx.dots {
		dots = append(dots, d)
	}
	return json.Marshal(dotContextJSON{Clock: ctx.clock, Dots: dots})
}

// UnmarshalJSON rebuilds the loose dot set from its slice form.
func (ctx *DotContext) UnmarshalJSON(data []byte) error {
	var aux dotContextJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Clock == nil {
		aux.Clock = make(map[ReplicaID]uint64)
	}
	ctx.clock = aux.Clock
	ctx.dots = make(map[Dot]struct{}, len(aux.Dots))
	for _, d := range aux.Dots {
		ctx.dots[d] = struct{}{}
	}
	return nil
}
