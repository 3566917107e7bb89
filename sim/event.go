package sim

import "container/heap"

// Event is a scheduled resumption of a process.
// Events are ordered by Time, then by Seq. Seq is assigned by the Simulator
// when the event is created and strictly increases, so two events due at the
// same tick fire in the order they were scheduled.
type Event struct {
	Time   int64          // Due time (in ticks)
	Seq    uint64         // Insertion order, tie-breaker for equal Time
	Target *ProcessHandle // Process resumed when the event fires
}

// EventQueue implements heap.Interface with deterministic ordering.
// Ordering: timestamp → sequence number.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []*Event

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].Time != eq[j].Time {
		return eq[i].Time < eq[j].Time
	}
	return eq[i].Seq < eq[j].Seq
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(*Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[0 : n-1]
	return item
}

// PushEvent adds an event to the queue.
func (eq *EventQueue) PushEvent(ev *Event) {
	heap.Push(eq, ev)
}

// PopNext removes and returns the next event, or nil if the queue is empty.
func (eq *EventQueue) PopNext() *Event {
	if eq.Len() == 0 {
		return nil
	}
	return heap.Pop(eq).(*Event)
}

// Peek returns the next event without removing it, or nil if the queue is empty.
func (eq EventQueue) Peek() *Event {
	if len(eq) == 0 {
		return nil
	}
	return eq[0]
}
