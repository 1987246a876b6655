package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/heitortanoue/convergent/crdt"
	"github.com/heitortanoue/convergent/internal/config"
	"github.com/heitortanoue/convergent/internal/telemetry"
)

func main() {
	var (
		scenario = flag.String("scenario", "all", "scenario to run: pncounter, vectorclock, aworset, awormap, all")
		showHelp = flag.Bool("help", false, "show usage")
	)
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	cfg := config.DefaultConfig()
	cfg.ReplicaID = 1
	log := telemetry.NewReplicaLogger(cfg.ReplicaID)

	switch *scenario {
	case "pncounter":
		runPNCounterScenario(log)
	case "vectorclock":
		runVectorClockScenarios(log)
	case "aworset":
		runAWORSetScenario(log)
	case "awormap":
		runAWORMapScenarios(log)
	case "all":
		runPNCounterScenario(log)
		runVectorClockScenarios(log)
		runAWORSetScenario(log)
		runAWORMapScenarios(log)
	default:
		fmt.Fprintf(os.Stderr, "unknown scenario %q\n", *scenario)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("demo walks through the convergent data type scenarios against the crdt package.")
	flag.PrintDefaults()
}

// runPNCounterScenario mirrors the literal c1/c2 walkthrough: two
// replicas independently increment and decrement, then merge.
func runPNCounterScenario(log *telemetry.ReplicaLogger) {
	const replicaA, replicaB crdt.ReplicaID = 100, 200

	c1 := crdt.NewPNCounter()
	c1.Inc(replicaA)
	log.LogLocalOp("PNCounter", "inc", replicaA)
	c1.Inc(replicaB)
	c1.Inc(replicaB)
	log.LogLocalOp("PNCounter", "inc", replicaB)

	c2 := crdt.NewPNCounter()
	c2.Inc(replicaB)
	c2.Dec(replicaA)
	log.LogLocalOp("PNCounter", "dec", replicaA)

	log.LogMerge("PNCounter", uint64(replicaB))
	c1.Merge(c2)

	log.LogValue("PNCounter", c1.Value())
}

// runVectorClockScenarios shows a causally-ordered pair and a
// concurrent pair.
func runVectorClockScenarios(log *telemetry.ReplicaLogger) {
	const replicaA, replicaB crdt.ReplicaID = 123, 456

	v1 := crdt.NewVectorClock()
	v1.Inc(replicaA)
	v1.Inc(replicaA)
	v1.Inc(replicaB)

	v2 := crdt.NewVectorClock()
	v2.Inc(replicaA)
	v2.Inc(replicaB)

	log.LogValue("VectorClock.Compare(causal)", v1.Compare(v2))

	w1 := crdt.NewVectorClock()
	w1.Inc(replicaA)
	w2 := crdt.NewVectorClock()
	w2.Inc(replicaB)

	log.LogValue("VectorClock.Compare(concurrent)", w1.Compare(w2))
}

// runAWORSetScenario walks the add-wins-then-remove-wins sequence.
func runAWORSetScenario(log *telemetry.ReplicaLogger) {
	const replicaA, replicaB crdt.ReplicaID = 1, 2
	elem := uuid.NewString()

	s1 := crdt.NewAWORSet[string](replicaA)
	s2 := crdt.NewAWORSet[string](replicaB)

	s1.Add(elem)
	log.LogLocalOp("AWORSet", "add", elem)
	s2.Add(elem)
	log.LogLocalOp("AWORSet", "add", elem)
	s1.Remove(elem)
	log.LogLocalOp("AWORSet", "remove", elem)

	log.LogMerge("AWORSet", uint64(replicaB))
	s1.Merge(s2.Clone())
	log.LogAddWins("AWORSet", elem)
	log.LogValue("AWORSet.Contains", s1.Contains(elem))

	s2.Merge(s1.Clone())
	s2.Remove(elem)
	log.LogLocalOp("AWORSet", "remove", elem)
	s1.Merge(s2.Clone())
	log.LogValue("AWORSet.Contains", s1.Contains(elem))
}

// runAWORMapScenarios covers a delta exchange between disjoint keys and
// a re-add surviving a concurrent remove.
func runAWORMapScenarios(log *telemetry.ReplicaLogger) {
	const replicaA, replicaB crdt.ReplicaID = 100, 200

	m1 := crdt.NewAWORMap[string, *crdt.GCounter, *crdt.GCounter](replicaA, crdt.ZeroGCounter)
	m1.Insert("foo", crdt.NewGCounter())
	foo, _ := m1.Get("foo")
	foo.Inc(replicaA)
	log.LogLocalOp("AWORMap", "insert+inc", "foo")

	m2 := crdt.NewAWORMap[string, *crdt.GCounter, *crdt.GCounter](replicaB, crdt.ZeroGCounter)
	m2.Insert("bar", crdt.NewGCounter())
	bar, _ := m2.Get("bar")
	bar.Inc(replicaB)
	log.LogLocalOp("AWORMap", "insert+inc", "bar")

	delta, ok := m2.TakeDelta()
	log.LogDeltaSent("AWORMap", ok)
	m1.MergeDelta(delta)
	log.LogDeltaReceived("AWORMap", uint64(replicaB))

	gotFoo, _ := m1.Get("foo")
	gotBar, _ := m1.Get("bar")
	log.LogValue("AWORMap[foo]", gotFoo.Value())
	log.LogValue("AWORMap[bar]", gotBar.Value())

	m3 := crdt.NewAWORMap[string, *crdt.GCounter, *crdt.GCounter](replicaA, crdt.ZeroGCounter)
	m3.Insert("baz", crdt.NewGCounter())
	m3.Remove("baz")
	log.LogLocalOp("AWORMap", "insert+remove", "baz")

	m4 := crdt.NewAWORMap[string, *crdt.GCounter, *crdt.GCounter](replicaB, crdt.ZeroGCounter)
	m4.Insert("baz", crdt.NewGCounter())
	baz, _ := m4.Get("baz")
	baz.Inc(replicaB)

	log.LogMerge("AWORMap", uint64(replicaA))
	m4.Merge(m3.Clone())
	log.LogAddWins("AWORMap", "baz")
	gotBaz, ok := m4.Get("baz")
	if ok {
		log.LogValue("AWORMap[baz]", gotBaz.Value())
	}
}
