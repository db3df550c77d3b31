// Defines Layout, the tagged variant selecting one of the four core-topology
// disciplines, and the shared dispatch used by the tick loop. Different
// layouts carry different role mixes and auxiliary state (locks,
// producer-consumer maps, dispatch cursors); each is its own type rather than
// a single generic core list so that role-conformance and lock-table
// presence stay compile-time properties of the variant in use.

package sim

// LayoutKind identifies which of the four topologies a Layout implements.
type LayoutKind int

const (
	LayoutForwarderWorkers        LayoutKind = 1
	LayoutCombinedWorkers         LayoutKind = 2
	LayoutNetworkStackAndApp      LayoutKind = 3
	LayoutMultiNetworkStackAndApp LayoutKind = 4
)

// ScheduleResult is what a layout's ScheduleAllCores reports back to the
// driver for a single tick.
type ScheduleResult struct {
	Finished        []*Request // requests that reached their terminal stage this tick
	Dropped         []*Request // requests dropped this tick (ready-queue-full etc.)
	FinishedPerCore map[int]int
	DroppedPerCore  map[int]int

	// ForwarderDroppedNoWorker counts requests the forwarder finished this
	// tick but could not hand off because no worker was idle (layout 1
	// only). The forwarding discipline has no queue to hold these; they are
	// lost on the spot rather than retried or re-queued.
	ForwarderDroppedNoWorker int
}

func newScheduleResult() *ScheduleResult {
	return &ScheduleResult{
		FinishedPerCore: make(map[int]int),
		DroppedPerCore:  make(map[int]int),
	}
}

func (r *ScheduleResult) addFinished(core *Core, req *Request) {
	r.Finished = append(r.Finished, req)
	r.FinishedPerCore[core.ID()]++
}

func (r *ScheduleResult) addDropped(core *Core, req *Request) {
	req.IsDropped = true
	r.Dropped = append(r.Dropped, req)
	r.DroppedPerCore[core.ID()]++
}

// Layout is the interface the tick loop drives once per tick, plus the
// ingress rule used to steer newly-arrived requests to the right core.
type Layout interface {
	Kind() LayoutKind
	// ScheduleAllCores advances every core owned by this layout by one tick:
	// consumers before producers, with immediate same-tick hand-off.
	ScheduleAllCores(tCur int64) *ScheduleResult
	// IngressCore resolves the core a newly-arrived request should be
	// enqueued onto.
	IngressCore(req *Request) *Core
	// Cores returns every core this layout owns, for per-core invariant
	// checks and final stats (finished/dropped-per-core over the full core
	// set, including cores never targeted by ingress).
	Cores() []*Core
}

// nextIdleFrom scans cores starting just after `from`, wrapping once, and
// returns the index of the first idle core found (or -1). This is the
// round-robin idle-core discovery shared by layouts 1, 3, and 4.
func nextIdleFrom(cores []*Core, from int) int {
	n := len(cores)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if cores[idx].IsIdle() {
			return idx
		}
	}
	return -1
}
