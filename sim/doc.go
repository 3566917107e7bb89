// Package sim provides the core discrete-event simulation engine for the clinic simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: Events and the (Time, Seq)-ordered event queue
//   - process.go: The Process interface, its handle, and the Yield values a process suspends with
//   - simulator.go: The event loop, process scheduling, and resumption
//   - resource.go: A counted resource with a FIFO wait queue (queue.go)
//
// # Architecture
//
// The kernel knows nothing about patients or clinics. Processes are explicit
// state machines: each call to Step runs the process to its next suspension
// point and returns a Yield (Timeout, Request, Done, or Fail). No goroutines
// are involved, so a run is fully deterministic for a given seed.
//
// Domain code lives in sub-packages:
//   - sim/clinic/: Arrival, patient, and monitor processes, metrics, and the M/M/c baseline
//   - sim/workload/: Duration samplers
//   - sim/trace/: The human-readable event log
//
// Time is an int64 tick count. Randomness comes from PartitionedRNG, which
// gives every subsystem its own stream derived from one SimulationKey.
package sim
