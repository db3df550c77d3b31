// Deterministic per-concern random streams for trace generation. A run is
// reproducible from a single master seed; each sampling concern (arrivals,
// the three stages' service times, flow assignment) draws from its own
// stream so that changing one concern's distribution never shifts the
// values another concern samples.

package sim

import (
	"hash/fnv"
	"math/rand"
)

// Subsystem names for the trace generator's random streams, one per
// sampling concern.
const (
	SubsystemArrival      = "arrival"
	SubsystemNetworkStack = "network_stack"
	SubsystemApplication  = "application"
	SubsystemForwarder    = "forwarder"
	SubsystemFlow         = "flow"
)

// PartitionedRNG hands out one deterministic *rand.Rand per named
// subsystem, all derived from a single master seed. Streams are created
// lazily and cached, so every caller asking for the same name shares one
// sequence. Not safe for concurrent use; the simulator is single-threaded
// throughout.
type PartitionedRNG struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewPartitionedRNG builds an empty stream table over the given master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:    seed,
		streams: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for name, creating it on first use. A
// stream's seed is the master seed folded with an FNV-1a hash of the name,
// so the streams are decoupled from one another but all pinned by the
// master seed.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seed ^ hashName(name)))
	p.streams[name] = rng
	return rng
}

// Seed returns the master seed this PartitionedRNG was built from.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

func hashName(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}
