// Builds the synthetic packet trace a Simulator consumes: one Request per
// packet, arrival times strictly non-decreasing, each stage's service time
// drawn independently so a run is reproducible from its seed alone.

package workload

import (
	"fmt"

	"github.com/inference-sim/corelayout-sim/sim"
)

// Generate builds nrPackets requests, arrivals spaced by cfg.Packets'
// inter-arrival distribution, each stage time drawn from its own StageConfig.
// Every sampler draws from its own PartitionedRNG subsystem so that changing
// one stage's distribution never perturbs another stage's sequence.
func Generate(cfg *sim.Config, rng *sim.PartitionedRNG) ([]*sim.Request, error) {
	arrivalSampler, err := NewArrivalSampler(cfg.Packets)
	if err != nil {
		return nil, fmt.Errorf("arrival sampler: %w", err)
	}
	forwarderSampler, err := NewStageSampler(cfg.Forwarder)
	if err != nil {
		return nil, fmt.Errorf("forwarder sampler: %w", err)
	}
	stackSampler, err := NewStageSampler(cfg.NetworkStack)
	if err != nil {
		return nil, fmt.Errorf("network_stack sampler: %w", err)
	}
	appSampler, err := NewStageSampler(cfg.Application)
	if err != nil {
		return nil, fmt.Errorf("application sampler: %w", err)
	}

	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrival)
	forwarderRNG := rng.ForSubsystem(sim.SubsystemForwarder)
	stackRNG := rng.ForSubsystem(sim.SubsystemNetworkStack)
	appRNG := rng.ForSubsystem(sim.SubsystemApplication)
	flowRNG := rng.ForSubsystem(sim.SubsystemFlow)

	nrFlows := uint64(cfg.Packets.NrFlows)
	packets := make([]*sim.Request, cfg.Packets.NrPackets)

	var lastArrival int64
	for i := 0; i < cfg.Packets.NrPackets; i++ {
		lastArrival += arrivalSampler.NextDelta(arrivalRNG)

		flowID := flowRNG.Uint64() % nrFlows
		forwardTime := forwarderSampler.Sample(forwarderRNG)
		stackTime := stackSampler.Sample(stackRNG)
		appTime := appSampler.Sample(appRNG)

		packets[i] = sim.NewRequest(i, flowID, lastArrival, forwardTime, stackTime, appTime)
	}

	return packets, nil
}
