// Implements Core, the per-tick state machine for a single simulated CPU.
// A Core's behavior is parameterized entirely by its CoreAction: forwarding,
// network-stack processing, application processing, the combined two-stage
// role used by layout 2, or the lock-guarded combined role used by layout 1's
// workers. A Core holds at most one in-flight request at a time.

package sim

// CoreAction selects which stage(s) a Core advances each tick.
type CoreAction int

const (
	ActionForward CoreAction = iota
	ActionNetworkStack
	ActionApplication
	ActionNetworkStackAndApplication
	ActionNetworkStackAndApplicationLock
)

// CoreState is the result of one Core.Schedule call.
type CoreState int

const (
	StateIdle CoreState = iota
	StateRunning
	StateFinished
)

// Core is a single simulated CPU. It owns its in-flight request, its bounded
// local queue, and (for network-stack cores) a bounded ready queue used as an
// intra-core staging buffer between the network-stack stage and hand-off to
// an application core.
type Core struct {
	id     int
	action CoreAction

	current *Request

	localQueue *BoundedQueue
	readyQueue *BoundedQueue
}

// NewCore constructs an idle Core with empty, capacity-bounded queues.
func NewCore(id int, action CoreAction, queueSize int) *Core {
	return &Core{
		id:         id,
		action:     action,
		localQueue: NewBoundedQueue(queueSize),
		readyQueue: NewBoundedQueue(queueSize),
	}
}

func (c *Core) ID() int            { return c.id }
func (c *Core) Action() CoreAction { return c.action }

// IsIdle reports whether the core has no in-flight request and an empty
// local queue.
func (c *Core) IsIdle() bool {
	return c.current == nil && c.localQueue.Len() == 0
}

// TryEnqueue admits req to the local queue, failing (without side effects)
// if the queue is at capacity.
func (c *Core) TryEnqueue(req *Request) bool {
	return c.localQueue.TryEnqueue(req)
}

// TryEnqueueReady admits req to the ready queue (network-stack cores only).
func (c *Core) TryEnqueueReady(req *Request) bool {
	return c.readyQueue.TryEnqueue(req)
}

// PopReady removes and returns the head of the ready queue. The driver must
// never call this on an empty ready queue.
func (c *Core) PopReady() *Request {
	return c.readyQueue.Pop()
}

// Schedule advances this core by one tick. locks is non-nil only for
// ActionNetworkStackAndApplicationLock cores.
func (c *Core) Schedule(tCur int64, locks *LockTable) (CoreState, *Request) {
	switch c.action {
	case ActionForward:
		return c.scheduleForward(tCur)
	case ActionNetworkStack:
		return c.scheduleNetworkStack(tCur)
	case ActionApplication:
		return c.scheduleApplication(tCur)
	case ActionNetworkStackAndApplication:
		return c.scheduleCombined(tCur)
	case ActionNetworkStackAndApplicationLock:
		return c.scheduleCombinedLocked(tCur, locks)
	default:
		panic("Core.Schedule: unknown action")
	}
}

// dequeueHead pulls the head of the local queue into the in-flight slot, if
// the slot is empty and the queue is non-empty. The request receives one
// tick of service on the very tick it is dequeued; it never "arrives idle"
// in the slot.
func (c *Core) dequeueHead() *Request {
	if c.current != nil {
		return nil
	}
	return c.localQueue.Dequeue()
}

func (c *Core) scheduleForward(tCur int64) (CoreState, *Request) {
	if c.current != nil {
		req := c.current
		if req.StepForward() {
			req.ForwardEnd = tCur
			c.current = nil
			return StateFinished, req
		}
		return StateRunning, nil
	}
	if req := c.dequeueHead(); req != nil {
		req.ForwardStart = tCur
		req.StepForward()
		c.current = req
		return StateRunning, nil
	}
	return StateIdle, nil
}

func (c *Core) scheduleNetworkStack(tCur int64) (CoreState, *Request) {
	if c.current != nil {
		req := c.current
		if req.StepStack() {
			req.StackEnd = tCur
			c.current = nil
			return StateFinished, req
		}
		return StateRunning, nil
	}
	if req := c.dequeueHead(); req != nil {
		req.StackStart = tCur
		req.StepStack()
		c.current = req
		return StateRunning, nil
	}
	return StateIdle, nil
}

func (c *Core) scheduleApplication(tCur int64) (CoreState, *Request) {
	if c.current != nil {
		req := c.current
		if req.StepApp() {
			req.AppEnd = tCur
			req.DepartureTime = tCur + 1
			c.current = nil
			return StateFinished, req
		}
		return StateRunning, nil
	}
	if req := c.dequeueHead(); req != nil {
		req.AppStart = tCur
		req.StepApp()
		c.current = req
		return StateRunning, nil
	}
	return StateIdle, nil
}

// scheduleCombined implements the two-stage network-stack-then-application
// role used by layout 2: no queue hand-off between stages, one tick of delay
// between stack completion and application start.
func (c *Core) scheduleCombined(tCur int64) (CoreState, *Request) {
	if c.current != nil {
		req := c.current
		if req.IsStackDone {
			if req.StepApp() {
				req.AppEnd = tCur
				req.DepartureTime = tCur + 1
				c.current = nil
				return StateFinished, req
			}
			return StateRunning, nil
		}
		if req.StepStack() {
			req.StackEnd = tCur
			req.AppStart = tCur + 1
		}
		return StateRunning, nil
	}
	if req := c.dequeueHead(); req != nil {
		req.StackStart = tCur
		req.StepStack()
		c.current = req
		return StateRunning, nil
	}
	return StateIdle, nil
}

// scheduleCombinedLocked is scheduleCombined guarded by the per-flow lock
// table used by layout 1's workers. A worker whose flow cell is held by
// another core stalls: it reports Running with no change to the request,
// which remains in-flight (not re-queued).
func (c *Core) scheduleCombinedLocked(tCur int64, locks *LockTable) (CoreState, *Request) {
	if c.current != nil {
		req := c.current
		owner := locks.ownerOf(req.FlowID)
		if owner == Unlocked {
			locks.acquire(req.FlowID, c.id)
			req.StackStart = tCur
			req.StepStack()
			return StateRunning, nil
		}
		if owner != c.id {
			return StateRunning, nil
		}
		if req.IsStackDone {
			if req.StepApp() {
				req.AppEnd = tCur
				req.DepartureTime = tCur + 1
				c.current = nil
				locks.release(req.FlowID)
				return StateFinished, req
			}
			return StateRunning, nil
		}
		if req.StepStack() {
			req.StackEnd = tCur
			req.AppStart = tCur + 1
		}
		return StateRunning, nil
	}
	if req := c.dequeueHead(); req != nil {
		if locks.ownerOf(req.FlowID) == Unlocked {
			locks.acquire(req.FlowID, c.id)
			req.StackStart = tCur
			req.StepStack()
		}
		c.current = req
		return StateRunning, nil
	}
	return StateIdle, nil
}
