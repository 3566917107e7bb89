package clinic

import "github.com/inference-sim/clinic-sim/sim/trace"

// PatientRecord is the immutable record of one completed patient. Times are in ticks.
// ArrivalTime + Wait + Service == CompletionTime holds exactly.
type PatientRecord struct {
	ID             int
	Name           string
	ArrivalTime    int64
	ServiceStart   int64
	Wait           int64 // ServiceStart - ArrivalTime
	Service        int64
	CompletionTime int64
}

// WaitUnits returns the wait in time units.
func (r PatientRecord) WaitUnits() float64 { return ToUnits(r.Wait) }

// ServiceUnits returns the service duration in time units.
func (r PatientRecord) ServiceUnits() float64 { return ToUnits(r.Service) }

// QueueSample is one monitor observation of the waiting-list length.
type QueueSample struct {
	Time   int64 // ticks
	Length int
}

// TimeUnits returns the sample time in time units.
func (s QueueSample) TimeUnits() float64 { return ToUnits(s.Time) }

// RunResult is everything one run produced. PatientRecords only holds
// patients whose service completed before the horizon; patients still in the
// system when the run stopped are counted in InService and Waiting.
type RunResult struct {
	Config Config
	Seed   int64

	PatientRecords []PatientRecord // in completion order
	QueueSamples   []QueueSample   // one per monitor tick
	TotalPatients  int             // patients that arrived
	InService      int             // holding a server when the run stopped
	Waiting        int             // still queued when the run stopped
	EndTime        int64           // clock at the end of the run, in ticks

	// EventLog is for display only; metrics never read it.
	EventLog []trace.Entry
}

// Completed returns the number of patients whose service finished.
func (r *RunResult) Completed() int {
	return len(r.PatientRecords)
}
