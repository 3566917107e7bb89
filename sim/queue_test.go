package sim

import (
	"testing"
)

func TestWaitQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	// GIVEN a queue with processes [A, B]
	wq := &WaitQueue{}
	a := &ProcessHandle{Name: "A"}
	b := &ProcessHandle{Name: "B"}
	wq.Enqueue(a)
	wq.Enqueue(b)

	// WHEN Peek() is called
	got := wq.Peek()

	// THEN it returns the front element without removing it
	if got != a {
		t.Errorf("Peek: got %v, want %v", got.Name, a.Name)
	}
	if wq.Len() != 2 {
		t.Errorf("Peek modified queue length: got %d, want 2", wq.Len())
	}
}

func TestWaitQueue_Peek_Empty_ReturnsNil(t *testing.T) {
	wq := &WaitQueue{}
	if got := wq.Peek(); got != nil {
		t.Errorf("Peek on empty queue: got %v, want nil", got)
	}
}

func TestWaitQueue_Dequeue_FIFOOrder(t *testing.T) {
	// GIVEN a queue with [A, B, C]
	wq := &WaitQueue{}
	for _, n := range []string{"A", "B", "C"} {
		wq.Enqueue(&ProcessHandle{Name: n})
	}

	// WHEN dequeuing everything
	names := make([]string, 0, 3)
	for wq.Len() > 0 {
		names = append(names, wq.Dequeue().Name)
	}

	// THEN order is first-in first-out
	want := []string{"A", "B", "C"}
	for i, n := range names {
		if n != want[i] {
			t.Errorf("Dequeue order[%d]: got %s, want %s", i, n, want[i])
		}
	}
	if wq.Dequeue() != nil {
		t.Error("Dequeue on empty queue should return nil")
	}
}

func TestWaitQueue_String(t *testing.T) {
	wq := &WaitQueue{}
	wq.Enqueue(&ProcessHandle{Name: "A"})
	wq.Enqueue(&ProcessHandle{Name: "B"})
	if got := wq.String(); got != "[A B]" {
		t.Errorf("String() = %q, want %q", got, "[A B]")
	}
}

func TestWaitQueue_Contains(t *testing.T) {
	wq := &WaitQueue{}
	a := &ProcessHandle{Name: "A"}
	wq.Enqueue(a)
	if !wq.Contains(a) {
		t.Error("Contains(A) = false, want true")
	}
	if wq.Contains(&ProcessHandle{Name: "A"}) {
		t.Error("Contains matched a different handle with the same name")
	}
}

func TestWaitQueue_Enqueue_Nil_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Enqueue(nil) did not panic")
		}
	}()
	wq := &WaitQueue{}
	wq.Enqueue(nil)
}
