// Implements Layout2: N combined-role workers, no forwarder, arrivals steered
// directly by the indirection table.

package sim

// Layout2 is a flat pool of combined-role workers.
type Layout2 struct {
	workers     []*Core
	indirection *IndirectionTable
}

// NewLayout2 builds nrWorkers combined-role cores and their ingress table.
func NewLayout2(nrWorkers, queueSize, nrIndirectionEntries int) *Layout2 {
	workers := make([]*Core, nrWorkers)
	for i := 0; i < nrWorkers; i++ {
		workers[i] = NewCore(i, ActionNetworkStackAndApplication, queueSize)
	}
	return &Layout2{
		workers:     workers,
		indirection: NewIndirectionTable(nrIndirectionEntries, nrWorkers),
	}
}

func (l *Layout2) Kind() LayoutKind { return LayoutCombinedWorkers }

func (l *Layout2) Cores() []*Core { return l.workers }

// IngressCore resolves the destination worker via the indirection table,
// mirroring NIC RSS steering across the flat worker pool.
func (l *Layout2) IngressCore(req *Request) *Core {
	return l.workers[l.indirection.CoreFor(req.FlowID)]
}

// ScheduleAllCores simply advances every worker by one tick; there is no
// hand-off to orchestrate.
func (l *Layout2) ScheduleAllCores(tCur int64) *ScheduleResult {
	res := newScheduleResult()
	for _, core := range l.workers {
		state, req := core.Schedule(tCur, nil)
		if state == StateFinished {
			res.addFinished(core, req)
		}
	}
	return res
}
