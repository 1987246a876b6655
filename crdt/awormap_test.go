package crdt

import "testing"

// TestScenarioS5AWORMapDelta is spec.md §8 scenario S5.
func TestScenarioS5AWORMapDelta(t *testing.T) {
	m1 := NewAWORMap[string, *GCounter, *GCounter](client1, ZeroGCounter)
	m1.Insert("foo", NewGCounter())
	foo, _ := m1.Get("foo")
	foo.Inc(client1)

	m2 := NewAWORMap[string, *GCounter, *GCounter](client2, ZeroGCounter)
	m2.Insert("bar", NewGCounter())
	bar, _ := m2.Get("bar")
	bar.Inc(client2)

	delta, ok := m2.TakeDelta()
	if !ok {
		t.Fatalf("expected a delta after Insert+Inc")
	}
	m1.MergeDelta(delta)

	gotFoo, ok := m1.Get("foo")
	if !ok || gotFoo.Value() != 1 {
		t.Fatalf("expected foo=1, got ok=%v value=%v", ok, gotFoo)
	}
	gotBar, ok := m1.Get("bar")
	if !ok || gotBar.Value() != 1 {
		t.Fatalf("expected bar=1, got ok=%v value=%v", ok, gotBar)
	}
}

// TestScenarioS6AWORMapReAddAfterRemove is spec.md §8 scenario S6.
func TestScenarioS6AWORMapReAddAfterRemove(t *testing.T) {
	m1 := NewAWORMap[string, *GCounter, *GCounter](client1, ZeroGCounter)
	m1.Insert("foo", NewGCounter())
	m1.Remove("foo")

	m2 := NewAWORMap[string, *GCounter, *GCounter](client2, ZeroGCounter)
	m2.Insert("foo", NewGCounter())
	foo, _ := m2.Get("foo")
	foo.Inc(client2)

	m2.Merge(m1.Clone())

	got, ok := m2.Get("foo")
	if !ok || got.Value() != 1 {
		t.Fatalf("expected foo=1 to survive concurrent remove, got ok=%v value=%v", ok, got)
	}
}

func TestAWORMapMergeReconcilesValuesForSharedKey(t *testing.T) {
	m1 := NewAWORMap[string, *GCounter, *GCounter](replica1, ZeroGCounter)
	m2 := NewAWORMap[string, *GCounter, *GCounter](replica2, ZeroGCounter)

	m1.Insert("hits", NewGCounter())
	v1, _ := m1.Get("hits")
	v1.Inc(replica1)

	m2.Insert("hits", NewGCounter())
	v2, _ := m2.Get("hits")
	v2.Inc(replica2)
	v2.Inc(replica2)

	m1.Merge(m2)

	got, ok := m1.Get("hits")
	if !ok {
		t.Fatalf("expected 'hits' present after merge")
	}
	if got.Value() != 3 {
		t.Fatalf("expected recursive merge to sum independent increments to 3, got %d", got.Value())
	}
}

// TestAWORMapRecursiveConvergence is spec.md §8 property 8: merging a map
// converges both the key set (AWORSet semantics) and every surviving
// value (its own CRDT semantics), independent of merge order.
func TestAWORMapRecursiveConvergence(t *testing.T) {
	a := NewAWORMap[string, *GCounter, *GCounter](replica1, ZeroGCounter)
	b := NewAWORMap[string, *GCounter, *GCounter](replica2, ZeroGCounter)

	a.Insert("x", NewGCounter())
	av, _ := a.Get("x")
	av.Inc(replica1)

	b.Insert("x", NewGCounter())
	bv, _ := b.Get("x")
	bv.Inc(replica2)

	b.Insert("y", NewGCounter())

	left := NewAWORMap[string, *GCounter, *GCounter](ReplicaID(1), ZeroGCounter)
	left.Merge(a)
	left.Merge(b)

	right := NewAWORMap[string, *GCounter, *GCounter](ReplicaID(2), ZeroGCounter)
	right.Merge(b)
	right.Merge(a)

	lx, lxOK := left.Get("x")
	rx, rxOK := right.Get("x")
	if !lxOK || !rxOK || lx.Value() != rx.Value() {
		t.Fatalf("merge not commutative for key 'x': left=%v(%v) right=%v(%v)", lxOK, lx, rxOK, rx)
	}

	_, lyOK := left.Get("y")
	_, ryOK := right.Get("y")
	if lyOK != ryOK {
		t.Fatalf("merge not commutative for key 'y' presence: left=%v right=%v", lyOK, ryOK)
	}
}

func TestAWORMapRemoveWinsWithoutConcurrentInsert(t *testing.T) {
	seed := NewAWORMap[string, *GCounter, *GCounter](ReplicaID(999), ZeroGCounter)
	seed.Insert("stale", NewGCounter())

	a := NewAWORMap[string, *GCounter, *GCounter](replica1, ZeroGCounter)
	b := NewAWORMap[string, *GCounter, *GCounter](replica2, ZeroGCounter)
	a.Merge(seed)
	b.Merge(seed)

	a.Remove("stale")
	a.Merge(b)
	b.Merge(a)

	if _, ok := a.Get("stale"); ok {
		t.Fatalf("expected 'stale' removed from a")
	}
	if _, ok := b.Get("stale"); ok {
		t.Fatalf("expected 'stale' removed from b")
	}
}

func TestAWORMapMergeIdempotent(t *testing.T) {
	m := NewAWORMap[string, *GCounter, *GCounter](replica1, ZeroGCounter)
	m.Insert("k", NewGCounter())
	v, _ := m.Get("k")
	v.Inc(replica1)

	before, _ := m.Get("k")
	beforeValue := before.Value()

	m.Merge(m.Clone())

	after, ok := m.Get("k")
	if !ok || after.Value() != beforeValue {
		t.Fatalf("merge with self must not change value: before %d after %v", beforeValue, after)
	}
}

func TestAWORMapCloneIsIndependent(t *testing.T) {
	m := NewAWORMap[string, *GCounter, *GCounter](replica1, ZeroGCounter)
	m.Insert("k", NewGCounter())
	v, _ := m.Get("k")
	v.Inc(replica1)

	clone := m.Clone()
	cv, _ := clone.Get("k")
	cv.Inc(replica1)

	orig, _ := m.Get("k")
	if orig.Value() == cv.Value() {
		t.Fatalf("mutating a cloned value must not affect the original")
	}
}
