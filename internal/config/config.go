// Package config holds the replica-local configuration for a process
// embedding the crdt package. It deliberately carries no network or
// gossip tuning: transport is out of scope, so only identity and the
// soft hints that shape delta buffering survive from the teacher's
// DroneConfig.
package config

import "time"

// ReplicaConfig is the centralized configuration for a single replica.
type ReplicaConfig struct {
	// ReplicaID identifies this replica across merges. Must be unique
	// per participant; the zero value is reserved and should not be
	// used as a real identity.
	ReplicaID uint64 `json:"replica_id"`

	// DeltaCompactionThreshold is a soft hint for how many local
	// mutations accumulate in a delta buffer before a caller should
	// flush it via TakeDelta. The crdt package itself never reads
	// this — deltas grow until drained regardless — callers use it to
	// decide how aggressively to ship state.
	DeltaCompactionThreshold int `json:"delta_compaction_threshold"`

	// DeltaFlushInterval is a soft hint for how often a caller should
	// call TakeDelta on a timer rather than waiting for the threshold.
	DeltaFlushInterval time.Duration `json:"delta_flush_interval"`
}

// DefaultConfig returns a ReplicaConfig with reasonable defaults. The
// caller must still assign a real, unique ReplicaID.
func DefaultConfig() *ReplicaConfig {
	return &ReplicaConfig{
		ReplicaID:                0,
		DeltaCompactionThreshold: 50,
		DeltaFlushInterval:       5 * time.Second,
	}
}
