// Package telemetry provides structured, stdout-based logging for code
// that drives the crdt package. The crdt package itself never logs —
// every entry point here is called from outside it, the same
// separation the teacher draws between its CRDT core and its
// DroneLogger.
package telemetry

import (
	"fmt"
	"log"
	"os"
	"time"
)

// ReplicaLogger writes structured, single-line log entries tagged with
// the owning replica's identity.
type ReplicaLogger struct {
	replicaID uint64
	logger    *log.Logger
}

// NewReplicaLogger creates a logger that prefixes every line with
// replicaID.
func NewReplicaLogger(replicaID uint64) *ReplicaLogger {
	logger := log.New(os.Stdout, fmt.Sprintf("[replica-%d] ", replicaID), log.LstdFlags|log.Lmicroseconds)
	return &ReplicaLogger{replicaID: replicaID, logger: logger}
}

// LogLocalOp records a locally-originated mutation (Add, Remove, Inc,
// Dec, Insert, ...) against a named CRDT instance.
func (l *ReplicaLogger) LogLocalOp(crdtName, op string, key any) {
	l.logger.Printf("LOCAL_OP: crdt=%s op=%s key=%v at=%d", crdtName, op, key, time.Now().UnixMilli())
}

// LogMerge records a full-state merge with another replica.
func (l *ReplicaLogger) LogMerge(crdtName string, peerReplicaID uint64) {
	l.logger.Printf("MERGE: crdt=%s peer=%d at=%d", crdtName, peerReplicaID, time.Now().UnixMilli())
}

// LogDeltaSent records a delta taken locally and about to be shipped.
func (l *ReplicaLogger) LogDeltaSent(crdtName string, hadDelta bool) {
	l.logger.Printf("DELTA_SENT: crdt=%s had_delta=%t at=%d", crdtName, hadDelta, time.Now().UnixMilli())
}

// LogDeltaReceived records a delta applied via MergeDelta.
func (l *ReplicaLogger) LogDeltaReceived(crdtName string, fromReplicaID uint64) {
	l.logger.Printf("DELTA_RECEIVED: crdt=%s from=%d at=%d", crdtName, fromReplicaID, time.Now().UnixMilli())
}

// LogCompaction records a DotContext fixpoint compaction, before and
// after loose-dot counts.
func (l *ReplicaLogger) LogCompaction(before, after int) {
	l.logger.Printf("COMPACTION: loose_dots_before=%d loose_dots_after=%d at=%d", before, after, time.Now().UnixMilli())
}

// LogAddWins records a concurrent add-over-remove resolution, for
// scenarios where a caller can tell the two happened concurrently
// (e.g. a demo script walking through spec scenarios).
func (l *ReplicaLogger) LogAddWins(crdtName string, key any) {
	l.logger.Printf("ADD_WINS: crdt=%s key=%v at=%d", crdtName, key, time.Now().UnixMilli())
}

// LogValue records the current observable value of a convergent type,
// for narrating demo runs.
func (l *ReplicaLogger) LogValue(crdtName string, value any) {
	l.logger.Printf("VALUE: crdt=%s value=%v at=%d", crdtName, value, time.Now().UnixMilli())
}

// LogError records a failure.
func (l *ReplicaLogger) LogError(operation string, err error) {
	l.logger.Printf("ERROR: operation=%s error=%s at=%d", operation, err.Error(), time.Now().UnixMilli())
}
