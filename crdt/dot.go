package crdt

import "fmt"

// Dot uniquely identifies one event (an Add) on one replica: the
// replica that produced it and the sequence number it occupies in
// that replica's local history.
type Dot struct {
	Replica ReplicaID `json:"replica"`
	Seq     uint64    `json:"seq"`
}

// String renders a Dot for logging and as a stable map-independent
// representation; Dot itself is already comparable and usable as a
// map key directly.
func (d Dot) String() string {
	return fmt.Sprintf("%d#%d", d.Replica, d.Seq)
}
