// Implements the WaitQueue, which holds all processes blocked on a Resource.
// Processes are enqueued when they request a saturated resource

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of processes waiting for a resource slot.
type WaitQueue struct {
	queue []*ProcessHandle // FIFO queue of blocked requesters
}

// Enqueue adds a process to the back of the wait queue.
func (wq *WaitQueue) Enqueue(h *ProcessHandle) {
	if h == nil {
		panic("Enqueue: handle must not be nil")
	}
	wq.queue = append(wq.queue, h)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(val.Name)
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of processes in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *ProcessHandle {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Contains reports whether h is waiting in the queue.
func (wq *WaitQueue) Contains(h *ProcessHandle) bool {
	for _, q := range wq.queue {
		if q == h {
			return true
		}
	}
	return false
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers
// may iterate over it but MUST NOT append to or reslice it.
func (wq *WaitQueue) Items() []*ProcessHandle {
	return wq.queue
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *ProcessHandle {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}

// mustNotContain panics if h is already queued; a requester may wait at most once.
func (wq *WaitQueue) mustNotContain(h *ProcessHandle) {
	if wq.Contains(h) {
		panic(fmt.Sprintf("WaitQueue: %s is already waiting", h.Name))
	}
}
