package queue

import (
	"math/big"

	"github.com/outofforest/mass"

	"github.com/dylan-thinnes/solsys/alloc"
	"github.com/dylan-thinnes/solsys/types"
)

// New creates new worklist scheduling composites allocated in the arena.
func New(arena *alloc.Arena, massTask *mass.Mass[types.Task]) *Queue {
	q := &Queue{
		arena:    arena,
		massTask: massTask,
	}
	q.tail = &q.head
	return q
}

// Queue is the FIFO worklist of pending decompositions.
type Queue struct {
	arena    *alloc.Arena
	massTask *mass.Mass[types.Task]

	head  *types.Task
	tail  **types.Task
	count uint64

	// free links processed tasks available for reuse.
	free *types.Task
}

// Schedule allocates composite for the value and enqueues its decomposition unless value is 1,
// in which case composite is complete immediately.
// Composite is returned immediately so it might be linked into the tree before it is decomposed.
func (q *Queue) Schedule(value *big.Int) types.CompositeAddress {
	address := q.arena.AllocateComposite(value)
	if isOne(value) {
		q.arena.Composite(address).State = types.StateDecomposed
		return address
	}
	q.push(value, address)
	return address
}

// ScheduleRoot allocates composite for the value and always enqueues its decomposition.
func (q *Queue) ScheduleRoot(value *big.Int) types.CompositeAddress {
	address := q.arena.AllocateComposite(value)
	q.push(value, address)
	return address
}

// Pop removes the oldest task from the queue. False is returned if queue is empty.
func (q *Queue) Pop() (*types.Task, bool) {
	t := q.head
	if t == nil {
		return nil, false
	}

	q.head = t.Next
	if q.head == nil {
		q.tail = &q.head
	}
	t.Next = nil
	q.count--

	return t, true
}

// Recycle returns processed task to the queue so its memory is reused by following pushes.
func (q *Queue) Recycle(t *types.Task) {
	*t = types.Task{Next: q.free}
	q.free = t
}

// Count returns the number of pending tasks.
func (q *Queue) Count() uint64 {
	return q.count
}

// Drain removes all pending tasks and returns composites they were bound to.
func (q *Queue) Drain() []types.CompositeAddress {
	addresses := make([]types.CompositeAddress, 0, q.count)
	for {
		t, ok := q.Pop()
		if !ok {
			return addresses
		}
		addresses = append(addresses, t.Output)
		q.Recycle(t)
	}
}

func (q *Queue) push(value *big.Int, address types.CompositeAddress) {
	t := q.free
	if t != nil {
		q.free = t.Next
	} else {
		t = q.massTask.New()
	}
	t.Value = value.String()
	t.Output = address
	t.Next = nil

	*q.tail = t
	q.tail = &t.Next
	q.count++
}

func isOne(value *big.Int) bool {
	return value.IsInt64() && value.Int64() == 1
}
