// Derives summary statistics from a finished run.

package clinic

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultWaitThreshold is the wait, in time units, beyond which a patient
// counts as having waited too long.
const DefaultWaitThreshold = 30.0

// Summary holds the headline statistics of a run. Times are in time units.
// Wait and service figures cover completed patients only; every field is 0
// when no patient completed.
type Summary struct {
	TotalPatients int
	Completed     int

	MeanWait float64
	MaxWait  float64
	P90Wait  float64
	P95Wait  float64

	MeanService float64

	// Utilization is the percentage of available server time spent serving,
	// clamped to [0, 100].
	Utilization float64

	WaitThreshold    float64
	FractionWaitOver float64 // fraction of completed patients with wait > WaitThreshold

	MaxQueue      int
	PeakQueueTime float64 // time of the first sample reaching MaxQueue
	MeanQueue     float64

	Throughput float64 // completed patients per time unit
}

// Summarize computes the Summary of r with DefaultWaitThreshold.
func Summarize(r *RunResult) Summary {
	return SummarizeWithThreshold(r, DefaultWaitThreshold)
}

// SummarizeWithThreshold computes the Summary of r. It is a pure function:
// r is not modified and repeated calls return identical values.
func SummarizeWithThreshold(r *RunResult, waitThreshold float64) Summary {
	s := Summary{WaitThreshold: waitThreshold}
	if r == nil {
		return s
	}
	s.TotalPatients = r.TotalPatients
	s.Completed = len(r.PatientRecords)

	waits := make([]float64, 0, len(r.PatientRecords))
	services := make([]float64, 0, len(r.PatientRecords))
	var serviceTicks int64
	over := 0
	for _, rec := range r.PatientRecords {
		w := rec.WaitUnits()
		waits = append(waits, w)
		services = append(services, rec.ServiceUnits())
		serviceTicks += rec.Service
		if w > waitThreshold {
			over++
		}
	}

	if len(waits) > 0 {
		s.MeanWait = stat.Mean(waits, nil)
		s.MaxWait = floats.Max(waits)
		sorted := sortedCopy(waits)
		s.P90Wait = CalculatePercentile(sorted, 90)
		s.P95Wait = CalculatePercentile(sorted, 95)
		s.MeanService = stat.Mean(services, nil)
		s.FractionWaitOver = float64(over) / float64(len(waits))
	}

	horizon := ToTicks(r.Config.Horizon)
	if r.Config.Capacity > 0 && horizon > 0 {
		util := float64(serviceTicks) / (float64(r.Config.Capacity) * float64(horizon)) * 100
		s.Utilization = clamp(util, 0, 100)
		s.Throughput = float64(s.Completed) / r.Config.Horizon
	}

	if len(r.QueueSamples) > 0 {
		lengths := make([]float64, len(r.QueueSamples))
		for i, q := range r.QueueSamples {
			lengths[i] = float64(q.Length)
			if q.Length > s.MaxQueue || i == 0 {
				s.MaxQueue = q.Length
				s.PeakQueueTime = q.TimeUnits()
			}
		}
		s.MeanQueue = stat.Mean(lengths, nil)
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
