// Package trace provides the chronological event log of a clinic run.
// The log is for display only; no statistic is computed from it.
// This package has no dependencies on sim/ or sim/clinic/; it stores pure data types.
package trace

import "fmt"

// Kind identifies what happened to a patient.
type Kind string

const (
	KindArrival      Kind = "arrival"
	KindServiceStart Kind = "service_start"
	KindServiceEnd   Kind = "service_end"
)

// Entry captures a single patient lifecycle event.
// Times are in simulation time units (minutes in the clinic setting).
type Entry struct {
	Kind    Kind
	Time    float64
	Patient string
	Wait    float64 // set for KindServiceStart
	Service float64 // set for KindServiceEnd
}

// String renders the entry as one human-readable log line.
func (e Entry) String() string {
	switch e.Kind {
	case KindArrival:
		return fmt.Sprintf("%s arrived at minute %.1f", e.Patient, e.Time)
	case KindServiceStart:
		return fmt.Sprintf("%s started service at minute %.1f after waiting %.1f minutes", e.Patient, e.Time, e.Wait)
	case KindServiceEnd:
		return fmt.Sprintf("%s finished service at minute %.1f after %.1f minutes of service", e.Patient, e.Time, e.Service)
	default:
		return fmt.Sprintf("%s %s at minute %.1f", e.Patient, e.Kind, e.Time)
	}
}
