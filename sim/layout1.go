// Implements Layout1: a single Forward-role core hands completed requests to
// one of N lock-guarded combined-role workers.

package sim

// Layout1 pairs a forwarder core with lock-guarded workers sharing a single
// per-flow LockTable.
type Layout1 struct {
	forwarder     *Core
	workers       []*Core
	locks         *LockTable
	lastWorkerIdx int
}

// NewLayout1 builds the forwarder and nrWorkers lock-guarded workers.
func NewLayout1(nrWorkers, queueSize, nrFlows int) *Layout1 {
	workers := make([]*Core, nrWorkers)
	for i := 0; i < nrWorkers; i++ {
		workers[i] = NewCore(i+1, ActionNetworkStackAndApplicationLock, queueSize)
	}
	return &Layout1{
		forwarder: NewCore(0, ActionForward, queueSize),
		workers:   workers,
		locks:     NewLockTable(nrFlows),
	}
}

func (l *Layout1) Kind() LayoutKind { return LayoutForwarderWorkers }

func (l *Layout1) Cores() []*Core {
	all := make([]*Core, 0, len(l.workers)+1)
	all = append(all, l.forwarder)
	all = append(all, l.workers...)
	return all
}

func (l *Layout1) IngressCore(req *Request) *Core { return l.forwarder }

// ScheduleAllCores advances every worker (starting at the dispatch cursor,
// wrapping once through the full set), then the forwarder, handing off its
// finished request to the first worker observed idle once every worker has
// made its own progress this tick. A worker that just completed its own
// request counts as idle for the hand-off. If none was idle, the request
// is lost.
func (l *Layout1) ScheduleAllCores(tCur int64) *ScheduleResult {
	res := newScheduleResult()

	n := len(l.workers)
	for i := 0; i < n; i++ {
		idx := (l.lastWorkerIdx + i) % n
		core := l.workers[idx]
		state, req := core.Schedule(tCur, l.locks)
		if state == StateFinished {
			res.addFinished(core, req)
		}
	}

	state, req := l.forwarder.Schedule(tCur, nil)
	if state == StateFinished {
		idx := nextIdleFrom(l.workers, l.lastWorkerIdx)
		if idx == -1 {
			res.ForwarderDroppedNoWorker++
		} else {
			l.lastWorkerIdx = idx
			if !l.workers[idx].TryEnqueue(req) {
				panic("Layout1: idle worker rejected enqueue")
			}
		}
	}

	return res
}
