// Implements Layout4: K NetworkStack cores each statically paired with their
// own group of Application cores (core_id mod K), so every group hands off
// independently rather than through one shared ready queue.

package sim

// Layout4 groups K network-stack cores with M application cores, statically
// partitioned so network core k only ever hands off to its own group.
type Layout4 struct {
	networkCores []*Core
	groups       map[int][]*Core // network core id -> its application cores
	lastIdx      map[int]int     // network core id -> dispatch cursor within its group
	indirection  *IndirectionTable
}

// NewLayout4 builds nrNetworkCores network-stack cores and nrAppCores
// application cores, partitioned round-robin by core id mod nrNetworkCores.
func NewLayout4(nrNetworkCores, nrAppCores, queueSize, nrIndirectionEntries int) *Layout4 {
	networkCores := make([]*Core, nrNetworkCores)
	groups := make(map[int][]*Core, nrNetworkCores)
	lastIdx := make(map[int]int, nrNetworkCores)
	for i := 0; i < nrNetworkCores; i++ {
		networkCores[i] = NewCore(i, ActionNetworkStack, queueSize)
		groups[i] = nil
		lastIdx[i] = 0
	}
	for i := 0; i < nrAppCores; i++ {
		coreID := nrNetworkCores + i
		networkID := coreID % nrNetworkCores
		groups[networkID] = append(groups[networkID], NewCore(coreID, ActionApplication, queueSize))
	}
	return &Layout4{
		networkCores: networkCores,
		groups:       groups,
		lastIdx:      lastIdx,
		indirection:  NewIndirectionTable(nrIndirectionEntries, nrNetworkCores),
	}
}

func (l *Layout4) Kind() LayoutKind { return LayoutMultiNetworkStackAndApp }

func (l *Layout4) Cores() []*Core {
	all := make([]*Core, 0)
	all = append(all, l.networkCores...)
	for _, nc := range l.networkCores {
		all = append(all, l.groups[nc.ID()]...)
	}
	return all
}

// IngressCore resolves the destination network-stack core via the
// indirection table.
func (l *Layout4) IngressCore(req *Request) *Core {
	return l.networkCores[l.indirection.CoreFor(req.FlowID)]
}

// ScheduleAllCores advances every application core across every group first,
// then each network-stack core in turn: a request a network core finishes is
// staged on its ready queue (dropped if full), then immediately handed to
// the first idle core in that network core's own group, scanned starting
// just after the group's dispatch cursor.
func (l *Layout4) ScheduleAllCores(tCur int64) *ScheduleResult {
	res := newScheduleResult()

	for _, nc := range l.networkCores {
		for _, core := range l.groups[nc.ID()] {
			state, req := core.Schedule(tCur, nil)
			if state == StateFinished {
				res.addFinished(core, req)
			}
		}
	}

	for _, nc := range l.networkCores {
		state, req := nc.Schedule(tCur, nil)
		if state != StateFinished {
			continue
		}
		if !nc.TryEnqueueReady(req) {
			res.addDropped(nc, req)
			continue
		}
		group := l.groups[nc.ID()]
		idx := nextIdleFrom(group, l.lastIdx[nc.ID()])
		if idx == -1 {
			continue
		}
		l.lastIdx[nc.ID()] = idx
		ready := nc.PopReady()
		if !group[idx].TryEnqueue(ready) {
			panic("Layout4: idle application core rejected enqueue")
		}
	}

	return res
}
