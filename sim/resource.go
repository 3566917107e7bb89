package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Resource is a capacity-limited pool of interchangeable slots with a FIFO
// waiting list. Requests are granted strictly in arrival order: no later
// requester is granted while an earlier one still waits.
//
// Resource state is only touched inside request and Release, which run
// atomically with respect to the cooperative Simulator. Running a Resource
// from several goroutines requires external locking.
type Resource struct {
	sim      *Simulator
	capacity int
	holders  map[*ProcessHandle]struct{}
	waitQ    *WaitQueue
}

// NewResource creates a Resource bound to sim with the given number of slots.
func NewResource(sim *Simulator, capacity int) (*Resource, error) {
	if sim == nil {
		panic("NewResource: simulator must not be nil")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be >= 1, got %d", ErrInvalidCapacity, capacity)
	}
	return &Resource{
		sim:      sim,
		capacity: capacity,
		holders:  make(map[*ProcessHandle]struct{}),
		waitQ:    &WaitQueue{},
	}, nil
}

// Capacity returns the fixed number of slots.
func (r *Resource) Capacity() int {
	return r.capacity
}

// InUse returns the number of granted slots, always in [0, Capacity].
func (r *Resource) InUse() int {
	return len(r.holders)
}

// QueueLen returns the number of requesters waiting for a slot.
func (r *Resource) QueueLen() int {
	return r.waitQ.Len()
}

// Holds reports whether h currently holds a slot.
func (r *Resource) Holds(h *ProcessHandle) bool {
	_, ok := r.holders[h]
	return ok
}

// Holders returns the handles holding a slot, ordered by process ID.
func (r *Resource) Holders() []*ProcessHandle {
	out := make([]*ProcessHandle, 0, len(r.holders))
	for h := range r.holders {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Waiting returns the waiting list in grant order. Callers must not modify it.
func (r *Resource) Waiting() []*ProcessHandle {
	return r.waitQ.Items()
}

// request grants h a slot if one is free and reports whether it did.
// Otherwise h is appended to the tail of the waiting list.
func (r *Resource) request(h *ProcessHandle) bool {
	if r.Holds(h) {
		panic(fmt.Sprintf("request: %s already holds a slot", h.Name))
	}
	r.waitQ.mustNotContain(h)
	if len(r.holders) < r.capacity {
		r.holders[h] = struct{}{}
		logrus.Tracef("[tick %07d] Granted %s immediately (%d/%d in use)", r.sim.Clock, h.Name, len(r.holders), r.capacity)
		return true
	}
	r.waitQ.Enqueue(h)
	logrus.Tracef("[tick %07d] Queued %s, waiting: %s", r.sim.Clock, h.Name, r.waitQ)
	return false
}

// Release frees the slot held by h. If requesters are waiting, the head of
// the list is granted the slot and resumed at the current time. Release never
// suspends the caller.
func (r *Resource) Release(h *ProcessHandle) error {
	if !r.Holds(h) {
		return fmt.Errorf("%w: %s", ErrNotHolder, h.Name)
	}
	delete(r.holders, h)

	next := r.waitQ.Dequeue()
	if next == nil {
		return nil
	}
	r.holders[next] = struct{}{}
	logrus.Tracef("[tick %07d] Granted %s after release by %s", r.sim.Clock, next.Name, h.Name)
	return r.sim.Schedule(0, next)
}
