package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"

	"github.com/inference-sim/clinic-sim/sim/clinic"
	"github.com/inference-sim/clinic-sim/sim/trace"
)

// Verdict classifies a run by its mean wait and utilization.
type Verdict string

const (
	VerdictCritical        Verdict = "critical"
	VerdictInefficient     Verdict = "inefficient"
	VerdictOverprovisioned Verdict = "overprovisioned"
	VerdictOptimal         Verdict = "optimal"
)

// Assess returns the verdict for s. Long waits (> 30 min) with high utilization
// (> 85%) are critical; long waits with low utilization (< 70%) point at
// scheduling rather than capacity; short waits (< 20 min) with low utilization
// (< 60%) mean too many servers.
func Assess(s clinic.Summary) Verdict {
	switch {
	case s.MeanWait > 30 && s.Utilization > 85:
		return VerdictCritical
	case s.MeanWait > 30 && s.Utilization < 70:
		return VerdictInefficient
	case s.MeanWait < 20 && s.Utilization < 60:
		return VerdictOverprovisioned
	default:
		return VerdictOptimal
	}
}

// Description returns a one-line explanation of the verdict.
func (v Verdict) Description() string {
	switch v {
	case VerdictCritical:
		return "long waits and servers near saturation: the clinic is overloaded"
	case VerdictInefficient:
		return "long waits while servers sit idle: arrivals are poorly spread over the day"
	case VerdictOverprovisioned:
		return "short waits and idle servers: capacity exceeds demand"
	default:
		return "waits and utilization are balanced"
	}
}

func meanWaitBand(w float64) string {
	if w > 30 {
		return "too long"
	}
	return "acceptable"
}

func maxWaitBand(w float64) string {
	switch {
	case w > 60:
		return "very long"
	case w > 45:
		return "needs attention"
	default:
		return "reasonable"
	}
}

func utilizationBand(u float64) string {
	switch {
	case u < 85:
		return "healthy"
	case u < 95:
		return "nearly full"
	default:
		return "overloaded"
	}
}

// palette colours report output. A disabled palette prints plain text.
type palette struct {
	arrival, start, end *color.Color
	good, warn, bad     *color.Color
	header              *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		arrival: color.New(color.FgCyan),
		start:   color.New(color.FgYellow),
		end:     color.New(color.FgGreen),
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed, color.Bold),
		header:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.arrival, p.start, p.end, p.good, p.warn, p.bad, p.header} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) entry(e trace.Entry) string {
	switch e.Kind {
	case trace.KindArrival:
		return p.arrival.Sprint(e.String())
	case trace.KindServiceStart:
		return p.start.Sprint(e.String())
	default:
		return p.end.Sprint(e.String())
	}
}

func (p *palette) verdict(v Verdict) string {
	switch v {
	case VerdictCritical:
		return p.bad.Sprint(string(v))
	case VerdictInefficient:
		return p.warn.Sprint(string(v))
	default:
		return p.good.Sprint(string(v))
	}
}

// reportOptions controls printReport.
type reportOptions struct {
	LogTail int  // number of trailing event-log entries; 0 hides the log
	Color   bool // colour output with ANSI escapes
}

// printReport writes the human-readable report of one run to w.
func printReport(w io.Writer, r *clinic.RunResult, opts reportOptions) {
	p := newPalette(opts.Color)
	cfg := r.Config
	s := clinic.Summarize(r)

	fmt.Fprintln(w, p.header.Sprint("=== Clinic Simulation ==="))
	fmt.Fprintf(w, "Mean inter-arrival : %.2f min\n", cfg.AvgInterArrival)
	fmt.Fprintf(w, "Mean service time  : %.2f min\n", cfg.AvgServiceTime)
	fmt.Fprintf(w, "Servers            : %d\n", cfg.Capacity)
	fmt.Fprintf(w, "Horizon            : %.1f min (%.1f h)\n", cfg.Horizon, cfg.Horizon/60)
	fmt.Fprintf(w, "Seed               : %d\n", r.Seed)

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.header.Sprint("=== Summary ==="))
	fmt.Fprintf(w, "Patients arrived   : %d\n", s.TotalPatients)
	fmt.Fprintf(w, "Patients served    : %d (in service %d, waiting %d at close)\n", s.Completed, r.InService, r.Waiting)
	fmt.Fprintf(w, "Mean wait          : %.1f min (%s)\n", s.MeanWait, meanWaitBand(s.MeanWait))
	fmt.Fprintf(w, "Max wait           : %.1f min (%s)\n", s.MaxWait, maxWaitBand(s.MaxWait))
	fmt.Fprintf(w, "P90 / P95 wait     : %.1f / %.1f min\n", s.P90Wait, s.P95Wait)
	fmt.Fprintf(w, "Waited > %.0f min    : %.1f%%\n", s.WaitThreshold, s.FractionWaitOver*100)
	fmt.Fprintf(w, "Mean service       : %.1f min\n", s.MeanService)
	fmt.Fprintf(w, "Utilization        : %.1f%% (%s)\n", s.Utilization, utilizationBand(s.Utilization))
	fmt.Fprintf(w, "Throughput         : %.3f patients/min\n", s.Throughput)
	fmt.Fprintf(w, "Queue peak         : %d at minute %.0f (%.1f h), mean %.2f\n", s.MaxQueue, s.PeakQueueTime, s.PeakQueueTime/60, s.MeanQueue)

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.header.Sprint("=== M/M/c Baseline ==="))
	base, err := clinic.Baseline(cfg)
	switch {
	case err != nil:
		fmt.Fprintf(w, "unavailable: %v\n", err)
	case !base.Stable:
		fmt.Fprintf(w, "Offered load %.2f Erlangs on %d servers: unstable, queue grows without bound\n", base.OfferedLoad, cfg.Capacity)
	default:
		fmt.Fprintf(w, "Offered load       : %.2f Erlangs (utilization %.1f%%)\n", base.OfferedLoad, base.Utilization*100)
		fmt.Fprintf(w, "P(wait)            : %.3f\n", base.ProbWait)
		fmt.Fprintf(w, "Mean wait          : %s min\n", formatFinite(base.MeanWait))
		fmt.Fprintf(w, "Mean queue         : %s\n", formatFinite(base.MeanQueue))
	}

	v := Assess(s)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Verdict: %s: %s\n", p.verdict(v), v.Description())

	if opts.LogTail > 0 && len(r.EventLog) > 0 {
		fmt.Fprintln(w)
		tail := trace.Tail(r.EventLog, opts.LogTail)
		fmt.Fprintln(w, p.header.Sprintf("=== Event Log (last %d of %d) ===", len(tail), len(r.EventLog)))
		for _, e := range tail {
			fmt.Fprintln(w, p.entry(e))
		}
	}
}

func formatFinite(v float64) string {
	if math.IsInf(v, 0) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", v)
}
