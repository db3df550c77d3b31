// Implements Simulator, the tick loop that drives a Layout against a sorted
// packet trace. Each tick: schedule every core first, then admit whatever
// arrives exactly at t_cur, then advance the clock.

package sim

import "github.com/sirupsen/logrus"

// Simulator owns one run: a layout, its packet trace, and the running
// Metrics the tick loop feeds.
type Simulator struct {
	TCur      int64
	TDuration int64
	NrPackets int

	// Packets is the sorted-by-arrival trace still waiting to arrive.
	// Run() consumes it from the front.
	Packets []*Request

	Layout  Layout
	Metrics *Metrics

	// Progress, when non-nil, is called with the number of ticks just
	// elapsed: once with the fast-forward to the first arrival, then with 1
	// per loop iteration. The CLI hangs its tick progress bar off this.
	Progress func(ticks int64)
}

// NewSimulator builds a Simulator from a generated trace. packets must be
// sorted ascending by ArrivalTime.
func NewSimulator(tDuration int64, nrPackets int, packets []*Request, layout Layout, metrics *Metrics) *Simulator {
	return &Simulator{
		TDuration: tDuration,
		NrPackets: nrPackets,
		Packets:   packets,
		Layout:    layout,
		Metrics:   metrics,
	}
}

// hasRemainingRequests reports whether the run should keep going: it stops
// early once every packet has either finished or been dropped, rather than
// always running out the full duration.
func (s *Simulator) hasRemainingRequests() bool {
	return len(s.Metrics.Dropped)+len(s.Metrics.Finished) < s.NrPackets
}

// Run executes the tick loop until the duration elapses or every packet has
// reached a terminal outcome.
func (s *Simulator) Run() {
	if len(s.Packets) == 0 {
		logrus.Warn("simulator: empty packet trace, nothing to run")
		return
	}

	s.TCur = s.Packets[0].ArrivalTime
	if s.Progress != nil {
		s.Progress(s.TCur)
	}

	for s.TCur < s.TDuration && s.hasRemainingRequests() {
		// Workers/application, then producer/forwarder, make progress first
		// with immediate same-tick hand-off; arrivals are admitted only
		// after this tick's scheduling has settled.
		res := s.Layout.ScheduleAllCores(s.TCur)
		s.Metrics.Absorb(res)

		var arrived []*Request
		for len(s.Packets) > 0 && s.Packets[0].ArrivalTime == s.TCur {
			arrived = append(arrived, s.Packets[0])
			s.Packets = s.Packets[1:]
		}

		for _, req := range arrived {
			s.Metrics.Received++
			core := s.Layout.IngressCore(req)
			if !core.TryEnqueue(req) {
				s.Metrics.RecordIngressDrop(req, core.ID())
			}
		}

		s.TCur++
		if s.Progress != nil {
			s.Progress(1)
		}
	}

	logrus.Infof("simulator: run ended at tick %d (received=%d finished=%d dropped=%d)",
		s.TCur, s.Metrics.Received, len(s.Metrics.Finished), len(s.Metrics.Dropped))
}
