// Implements Layout3: a single NetworkStack core stages completed requests
// on its ready queue for hand-off to one of M Application cores.

package sim

// Layout3 pairs one network-stack core with a pool of application cores.
type Layout3 struct {
	networkCore   *Core
	appCores      []*Core
	lastWorkerIdx int
}

// NewLayout3 builds the network-stack core and nrAppCores application cores.
func NewLayout3(nrAppCores, queueSize int) *Layout3 {
	appCores := make([]*Core, nrAppCores)
	for i := 0; i < nrAppCores; i++ {
		appCores[i] = NewCore(i+1, ActionApplication, queueSize)
	}
	return &Layout3{
		networkCore: NewCore(0, ActionNetworkStack, queueSize),
		appCores:    appCores,
	}
}

func (l *Layout3) Kind() LayoutKind { return LayoutNetworkStackAndApp }

func (l *Layout3) Cores() []*Core {
	all := make([]*Core, 0, len(l.appCores)+1)
	all = append(all, l.networkCore)
	all = append(all, l.appCores...)
	return all
}

func (l *Layout3) IngressCore(req *Request) *Core { return l.networkCore }

// ScheduleAllCores advances every application core (starting at the dispatch
// cursor, wrapping once), then the network-stack core. A request the network
// core finishes is staged on its ready queue; if the ready queue is full the
// request is dropped, otherwise it is immediately handed to the application
// core observed idle once every application core has made its own progress
// this tick (one just made idle by completing its own request counts). With
// no idle core it waits in the ready queue for a future tick's hand-off.
func (l *Layout3) ScheduleAllCores(tCur int64) *ScheduleResult {
	res := newScheduleResult()

	n := len(l.appCores)
	for i := 0; i < n; i++ {
		idx := (l.lastWorkerIdx + i) % n
		core := l.appCores[idx]
		state, req := core.Schedule(tCur, nil)
		if state == StateFinished {
			res.addFinished(core, req)
		}
	}

	state, req := l.networkCore.Schedule(tCur, nil)
	if state == StateFinished {
		if !l.networkCore.TryEnqueueReady(req) {
			res.addDropped(l.networkCore, req)
		} else if idx := nextIdleFrom(l.appCores, l.lastWorkerIdx); idx != -1 {
			l.lastWorkerIdx = idx
			ready := l.networkCore.PopReady()
			if !l.appCores[idx].TryEnqueue(ready) {
				panic("Layout3: idle application core rejected enqueue")
			}
		}
	}

	return res
}
