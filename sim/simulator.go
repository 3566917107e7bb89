// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds simulation time, the pending events,
// and the event loop. One Simulator belongs to exactly one run; it is not safe
// for concurrent use, and it never consults wall-clock time.
type Simulator struct {
	Clock int64
	// EventQueue has all pending process resumptions, ordered by (Time, Seq)
	EventQueue EventQueue
	// OnEvent, if set, is called with each event just before its target resumes.
	OnEvent func(ev *Event)

	nextSeq   uint64
	nextPID   uint64
	processed uint64
}

// NewSimulator creates a Simulator with its clock at zero and no pending events.
func NewSimulator() *Simulator {
	return &Simulator{
		Clock:      0,
		EventQueue: make(EventQueue, 0),
	}
}

// Schedule inserts an event that resumes target at Clock + delay.
// Events with equal due time fire in the order they were scheduled.
func (sim *Simulator) Schedule(delay int64, target *ProcessHandle) error {
	if target == nil {
		panic("Schedule: target must not be nil")
	}
	if delay < 0 {
		return fmt.Errorf("%w: %d ticks for %s at tick %d", ErrInvalidDelay, delay, target.Name, sim.Clock)
	}
	sim.nextSeq++
	sim.EventQueue.PushEvent(&Event{
		Time:   sim.Clock + delay,
		Seq:    sim.nextSeq,
		Target: target,
	})
	return nil
}

// Spawn registers p as a new process, runnable at the current time.
func (sim *Simulator) Spawn(name string, p Process) (*ProcessHandle, error) {
	if p == nil {
		panic("Spawn: process must not be nil")
	}
	sim.nextPID++
	h := &ProcessHandle{
		ID:    sim.nextPID,
		Name:  name,
		State: ProcessScheduled,
		proc:  p,
	}
	if err := sim.Schedule(0, h); err != nil {
		return nil, err
	}
	logrus.Tracef("[tick %07d] Spawned %s", sim.Clock, h)
	return h, nil
}

// Run fires pending events in (Time, Seq) order until none remains with a due
// time before until. The clock is then advanced to until, so a run always ends
// at its horizon. Events due at or after until stay pending.
// Run returns the first error raised by a process; the simulation is aborted.
func (sim *Simulator) Run(until int64) error {
	for {
		next := sim.EventQueue.Peek()
		if next == nil || next.Time >= until {
			break
		}
		ev := sim.EventQueue.PopNext()
		if ev.Time < sim.Clock {
			panic(fmt.Sprintf("Run: event for %s due at tick %d is behind clock %d", ev.Target.Name, ev.Time, sim.Clock))
		}
		// advance the clock
		sim.Clock = ev.Time
		sim.processed++
		if sim.OnEvent != nil {
			sim.OnEvent(ev)
		}
		logrus.Tracef("[tick %07d] Resuming %s (seq %d)", sim.Clock, ev.Target, ev.Seq)
		if err := sim.resume(ev.Target); err != nil {
			logrus.Errorf("[tick %07d] Simulation aborted: %v", sim.Clock, err)
			return err
		}
	}
	if sim.Clock < until {
		sim.Clock = until
	}
	logrus.Debugf("[tick %07d] Simulation ended; %d events processed, %d pending", sim.Clock, sim.processed, sim.EventQueue.Len())
	return nil
}

// resume runs h until its next suspension point. A Request that is granted
// immediately does not suspend: the process continues in the same resumption.
func (sim *Simulator) resume(h *ProcessHandle) error {
	if h.State == ProcessCompleted {
		panic(fmt.Sprintf("resume: %s already completed", h.Name))
	}
	for {
		h.State = ProcessRunning
		y := h.proc.Step(sim, h)
		switch y.kind {
		case yieldTimeout:
			if err := sim.Schedule(y.delay, h); err != nil {
				h.State = ProcessCompleted
				return fmt.Errorf("process %s: %w", h.Name, err)
			}
			h.State = ProcessSuspendedTimeout
			return nil
		case yieldRequest:
			if y.resource.request(h) {
				continue
			}
			h.State = ProcessSuspendedResource
			return nil
		case yieldDone:
			h.State = ProcessCompleted
			logrus.Tracef("[tick %07d] Completed %s", sim.Clock, h.Name)
			return nil
		case yieldFail:
			h.State = ProcessCompleted
			return fmt.Errorf("process %s: %w", h.Name, y.err)
		default:
			panic(fmt.Sprintf("resume: unknown yield kind %d from %s", y.kind, h.Name))
		}
	}
}

// Now returns the current simulation time in ticks.
func (sim *Simulator) Now() int64 {
	return sim.Clock
}

// Pending returns the number of events not yet fired.
func (sim *Simulator) Pending() int {
	return sim.EventQueue.Len()
}

// Processed returns the number of events fired so far.
func (sim *Simulator) Processed() uint64 {
	return sim.processed
}
