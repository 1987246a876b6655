package crdt

// ORSet is the simpler, independent observe-remove set this package
// keeps for lineage and as an alternative to the dot-kernel based
// AWORSet. Each key is tracked by a pair of VectorClocks (one for adds,
// one for removes); membership and conflict resolution both fall out
// of comparing the pair.
type ORSet[K comparable] struct {
	replicaID ReplicaID
	add       map[K]*VectorClock
	rem       map[K]*VectorClock
}

// NewORSet creates an empty set owned by replicaID.
func NewORSet[K comparable](replicaID ReplicaID) *ORSet[K] {
	return &ORSet[K]{
		replicaID: replicaID,
		add:       make(map[K]*VectorClock),
		rem:       make(map[K]*VectorClock),
	}
}

// pair returns whatever add/remove clocks are currently on file for k.
func (s *ORSet[K]) pair(k K) (*VectorClock, *VectorClock) {
	return s.add[k], s.rem[k]
}

// Contains reports whether k is a member: present on the add side and,
// if present on the remove side too, not dominated by it.
func (s *ORSet[K]) Contains(k K) bool {
	va, vr := s.pair(k)
	if va == nil {
		return false
	}
	if vr != nil && va.Compare(vr) == Less {
		return false
	}
	return true
}

// Add records an add of k, advancing whichever clock (add or remove)
// is already on file for it and filing the result under add — this is
// what lets a concurrent add win over a concurrent remove, since the
// remove's clock will not dominate the fresher add.
func (s *ORSet[K]) Add(k K) {
	v := s.seed(k)
	v.Inc(s.replicaID)
	delete(s.rem, k)
	s.add[k] = v
}

// Remove records a remove of k, symmetric to Add.
func (s *ORSet[K]) Remove(k K) {
	v := s.seed(k)
	v.Inc(s.replicaID)
	delete(s.add, k)
	s.rem[k] = v
}

// seed returns a clone of whichever clock is already on file for k (add
// takes priority, matching the observed-remove convention that any
// existing knowledge about k carries forward), or a fresh clock.
func (s *ORSet[K]) seed(k K) *VectorClock {
	if va, ok := s.add[k]; ok {
		return va.Clone()
	}
	if vr, ok := s.rem[k]; ok {
		return vr.Clone()
	}
	return NewVectorClock()
}

func mergeClockMaps[K comparable](a map[K]*VectorClock, b map[K]*VectorClock) {
	for k, vb := range b {
		if va, ok := a[k]; ok {
			va.Merge(vb)
		} else {
			a[k] = vb.Clone()
		}
	}
}

// Merge unions both sides' VectorClock maps, then purges any key whose
// remove clock strictly dominates its add clock (a remove that is
// causally ahead of every known add) and any remove entry whose key no
// longer needs tracking because its add clock is not dominated by it
// (equal, ahead, or concurrent).
func (s *ORSet[K]) Merge(other *ORSet[K]) {
	mergeClockMaps(s.add, other.add)
	mergeClockMaps(s.rem, other.rem)

	for k, vr := range s.rem {
		if va, ok := s.add[k]; ok && va.Compare(vr) == Less {
			delete(s.add, k)
		}
	}
	for k, va := range s.add {
		if vr, ok := s.rem[k]; ok && va.Compare(vr) != Less {
			delete(s.rem, k)
		}
	}
}

// Clone returns a deep copy.
func (s *ORSet[K]) Clone() *ORSet[K] {
	out := NewORSet[K](s.replicaID)
	for k, v := range s.add {
		out.add[k] = v.Clone()
	}
	for k, v := range s.rem {
		out.rem[k] = v.Clone()
	}
	return out
}
