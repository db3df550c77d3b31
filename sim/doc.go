// Package sim implements a tick-driven simulator of packet processing across
// server core layouts, used to compare tail-latency and drop behavior under a
// synthetic packet stream.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go: Request lifecycle (forward → network-stack → application → departed)
//   - core.go: Core state machine and per-tick Schedule() dequeue/step/finish semantics
//   - layout.go, layout1.go, layout2.go, layout3.go, layout4.go: the four core
//     layouts under comparison and their hand-off disciplines
//   - simulator.go: the per-tick driver loop (schedule phase, then arrival admission)
//   - metrics.go: outcome accumulation and CSV/raw-latency output
//
// Workload generation (inter-arrival sampling, per-stage service time
// sampling, trace construction) lives in sim/workload.
package sim
