package sim

import "fmt"

// ProcessState is the lifecycle state of a ProcessHandle.
type ProcessState int

const (
	// ProcessScheduled: spawned, first resumption pending.
	ProcessScheduled ProcessState = iota
	// ProcessRunning: the process's Step is executing.
	ProcessRunning
	// ProcessSuspendedTimeout: waiting for a Timeout to elapse.
	ProcessSuspendedTimeout
	// ProcessSuspendedResource: waiting in a Resource's FIFO list, or granted
	// a slot and waiting for its resumption event to fire.
	ProcessSuspendedResource
	// ProcessCompleted: the process returned Done or Fail.
	ProcessCompleted
)

func (s ProcessState) String() string {
	switch s {
	case ProcessScheduled:
		return "scheduled"
	case ProcessRunning:
		return "running"
	case ProcessSuspendedTimeout:
		return "suspended(timeout)"
	case ProcessSuspendedResource:
		return "suspended(resource)"
	case ProcessCompleted:
		return "completed"
	default:
		return fmt.Sprintf("ProcessState(%d)", int(s))
	}
}

// Process is a unit of suspendable logic, written as an explicit state machine.
// Step runs synchronously from the process's current suspension point to the
// next one and reports how it yielded. Step must keep whatever locals it needs
// across suspensions in its own receiver.
type Process interface {
	Step(sim *Simulator, self *ProcessHandle) Yield
}

// ProcessFunc adapts an ordinary function to the Process interface.
type ProcessFunc func(sim *Simulator, self *ProcessHandle) Yield

// Step calls f(sim, self).
func (f ProcessFunc) Step(sim *Simulator, self *ProcessHandle) Yield {
	return f(sim, self)
}

// ProcessHandle represents one spawned process.
// Transitions are driven only by the Simulator firing the event it waits on.
type ProcessHandle struct {
	ID    uint64
	Name  string
	State ProcessState

	proc Process
}

func (h *ProcessHandle) String() string {
	return fmt.Sprintf("%s#%d(%s)", h.Name, h.ID, h.State)
}

type yieldKind int

const (
	yieldTimeout yieldKind = iota
	yieldRequest
	yieldDone
	yieldFail
)

// Yield describes how a process gave control back to the Simulator.
// Construct one with Timeout, Request, Done, or Fail.
type Yield struct {
	kind     yieldKind
	delay    int64
	resource *Resource
	err      error
}

// Timeout suspends the process until now + delay ticks.
func Timeout(delay int64) Yield {
	return Yield{kind: yieldTimeout, delay: delay}
}

// Request asks r for a slot. If one is free the process continues immediately
// within the same resumption; otherwise it suspends until granted.
func Request(r *Resource) Yield {
	if r == nil {
		panic("Request: resource must not be nil")
	}
	return Yield{kind: yieldRequest, resource: r}
}

// Done ends the process.
func Done() Yield {
	return Yield{kind: yieldDone}
}

// Fail ends the process and aborts the run with err.
func Fail(err error) Yield {
	return Yield{kind: yieldFail, err: err}
}
