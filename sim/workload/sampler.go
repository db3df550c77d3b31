// Implements the per-stage service-time and inter-arrival samplers used to
// build a synthetic packet trace: constant, exponential, and (for forwarder
// and application stages) bimodal distributions.

package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/inference-sim/corelayout-sim/sim"
)

// StageSampler draws one stage's service time in ticks, always >= 1.
type StageSampler interface {
	Sample(rng *rand.Rand) int64
}

// constantSampler always returns its fixed mean.
type constantSampler struct {
	mean int64
}

func (s constantSampler) Sample(_ *rand.Rand) int64 {
	return atLeastOne(s.mean)
}

// exponentialSampler draws from an exponential distribution via inverse CDF,
// centered on 1/mean as its rate.
type exponentialSampler struct {
	mean int64
}

func (s exponentialSampler) Sample(rng *rand.Rand) int64 {
	if s.mean <= 0 {
		return 1
	}
	return atLeastOne(exponentialCentered(rng.Float64(), 1.0/float64(s.mean)))
}

// bimodalSampler picks mean1 with probability mode, else mean2.
type bimodalSampler struct {
	mean1, mean2 int64
	mode         float64
}

func (s bimodalSampler) Sample(rng *rand.Rand) int64 {
	if rng.Float64() < s.mode {
		return atLeastOne(s.mean1)
	}
	return atLeastOne(s.mean2)
}

// exponentialCentered maps a uniform draw r in [0,1) to an exponential
// sample with rate lambda: -ln(1-r)/lambda.
func exponentialCentered(r, lambda float64) int64 {
	l := -math.Log(1.0 - r)
	return int64(l / lambda)
}

func atLeastOne(v int64) int64 {
	if v <= 0 {
		return 1
	}
	return v
}

// NewStageSampler builds a StageSampler from a sim.StageConfig.
func NewStageSampler(cfg sim.StageConfig) (StageSampler, error) {
	switch cfg.Distribution {
	case "constant":
		return constantSampler{mean: cfg.Mean1}, nil
	case "exponential":
		return exponentialSampler{mean: cfg.Mean1}, nil
	case "bimodal":
		return bimodalSampler{mean1: cfg.Mean1, mean2: cfg.Mean2, mode: cfg.Mode}, nil
	default:
		return nil, fmt.Errorf("unknown stage distribution %q", cfg.Distribution)
	}
}

// ArrivalSampler draws the next inter-arrival delta in ticks.
type ArrivalSampler interface {
	NextDelta(rng *rand.Rand) int64
}

type constantArrivalSampler struct {
	interval int64
}

func (s constantArrivalSampler) NextDelta(_ *rand.Rand) int64 {
	return s.interval
}

type exponentialArrivalSampler struct {
	ratePerTick float64
}

func (s exponentialArrivalSampler) NextDelta(rng *rand.Rand) int64 {
	return exponentialCentered(rng.Float64(), s.ratePerTick)
}

// NewArrivalSampler builds an ArrivalSampler from a sim.PacketsConfig. Rate is
// expressed in packets/sec; ticks are nanosecond-scale, hence the 1e9-based
// conversion.
func NewArrivalSampler(cfg sim.PacketsConfig) (ArrivalSampler, error) {
	switch cfg.Distribution {
	case "constant":
		return constantArrivalSampler{interval: int64(1_000_000_000.0 / cfg.Rate)}, nil
	case "exponential":
		return exponentialArrivalSampler{ratePerTick: cfg.Rate / 1_000_000_000.0}, nil
	default:
		return nil, fmt.Errorf("unknown arrival distribution %q", cfg.Distribution)
	}
}
