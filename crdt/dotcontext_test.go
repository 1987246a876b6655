package crdt

import "testing"

// assertCompacted checks spec.md §8 property 6: after compaction, no
// loose dot (r,k) satisfies k <= clock[r]+1.
func assertCompacted(t *testing.T, ctx *DotContext) {
	t.Helper()
	for d := range ctx.dots {
		if d.Seq <= ctx.clock[d.Replica]+1 {
			t.Fatalf("dot %v should have compacted into clock (clock[%d]=%d)", d, d.Replica, ctx.clock[d.Replica])
		}
	}
}

func TestDotContextNextDotAdvancesAndIsContained(t *testing.T) {
	ctx := NewDotContext()

	d1 := ctx.NextDot(replica1)
	d2 := ctx.NextDot(replica1)

	if d1 == d2 {
		t.Fatalf("successive NextDot calls must not repeat a dot")
	}
	if !ctx.Contains(d1) || !ctx.Contains(d2) {
		t.Fatalf("context should contain dots it just minted")
	}
	assertCompacted(t, ctx)
}

func TestDotContextCompactsOutOfOrderArrival(t *testing.T) {
	ctx := NewDotContext()

	// Dots 2 and 3 arrive before dot 1; none should compact yet.
	ctx.add(Dot{Replica: replica1, Seq: 2})
	ctx.add(Dot{Replica: replica1, Seq: 3})
	ctx.compact()

	if len(ctx.dots) != 2 {
		t.Fatalf("expected both loose dots retained, got %d", len(ctx.dots))
	}

	// Dot 1 arrives: 1, 2 and 3 should all fold into the clock in one
	// compact() call thanks to fixpoint iteration.
	ctx.add(Dot{Replica: replica1, Seq: 1})
	ctx.compact()

	if len(ctx.dots) != 0 {
		t.Fatalf("expected no loose dots after contiguous prefix completes, got %d", len(ctx.dots))
	}
	if got := ctx.clock[replica1]; got != 3 {
		t.Fatalf("expected clock[replica1] = 3, got %d", got)
	}
	assertCompacted(t, ctx)
}

func TestDotContextCompactsAlreadyCoveredDot(t *testing.T) {
	ctx := NewDotContext()
	ctx.NextDot(replica1)
	ctx.NextDot(replica1)

	// A duplicate/stale dot already covered by the clock should vanish.
	ctx.add(Dot{Replica: replica1, Seq: 1})
	ctx.compact()

	if len(ctx.dots) != 0 {
		t.Fatalf("expected stale dot to be dropped, got %d loose dots", len(ctx.dots))
	}
}

func TestDotContextMergeCompacts(t *testing.T) {
	a := NewDotContext()
	a.NextDot(replica1)

	b := NewDotContext()
	b.add(Dot{Replica: replica1, Seq: 2})

	a.Merge(b)

	if got := a.clock[replica1]; got != 2 {
		t.Fatalf("expected merge to extend clock to 2, got %d", got)
	}
	assertCompacted(t, a)
}

func TestDotContextCloneIsIndependent(t *testing.T) {
	a := NewDotContext()
	a.NextDot(replica1)

	clone := a.Clone()
	clone.NextDot(replica1)

	if a.clock[replica1] == clone.clock[replica1] {
		t.Fatalf("mutating the clone must not affect the original")
	}
}
