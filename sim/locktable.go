// Implements LockTable, the per-flow reservation layout 1's workers use to
// guarantee at-most-one core executes a given flow's request at a time.
// Because the simulator is strictly single-threaded, this is a reservation
// rather than a real mutual-exclusion primitive: a single write per
// acquire/release, never contended in the concurrent sense.

package sim

// Unlocked is the sentinel lock-table value meaning no core owns the flow.
const Unlocked = -1

// LockTable is a flow-id-indexed array of owning core ids (or Unlocked).
type LockTable struct {
	owner []int
}

// NewLockTable returns a table with every one of nrFlows flows unlocked.
func NewLockTable(nrFlows int) *LockTable {
	t := &LockTable{owner: make([]int, nrFlows)}
	for i := range t.owner {
		t.owner[i] = Unlocked
	}
	return t
}

func (t *LockTable) ownerOf(flow uint64) int {
	return t.owner[flow]
}

func (t *LockTable) acquire(flow uint64, coreID int) {
	t.owner[flow] = coreID
}

func (t *LockTable) release(flow uint64) {
	t.owner[flow] = Unlocked
}
