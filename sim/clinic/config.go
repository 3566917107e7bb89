package clinic

import (
	"fmt"
	"math"

	"github.com/inference-sim/clinic-sim/sim"
	"github.com/inference-sim/clinic-sim/sim/trace"
)

const (
	// TicksPerUnit is the number of simulation ticks in one time unit (one minute).
	// Time is kept in integer ticks so that arrival + wait + service equals the
	// completion time exactly.
	TicksPerUnit = 1_000_000

	// MinInterArrival is the floor applied to every inter-arrival gap, in time units.
	// It guarantees the arrival process always moves forward.
	MinInterArrival = 0.1

	// DefaultMonitorInterval is the queue sampling period, in time units.
	DefaultMonitorInterval = 1.0

	// MaxUnits bounds every time parameter so that tick arithmetic cannot overflow.
	MaxUnits = 1e9
)

// Config holds the parameters of one clinic run. Times are in time units.
type Config struct {
	AvgInterArrival float64 // mean gap between arrivals (> 0)
	AvgServiceTime  float64 // mean service duration (> 0)
	Capacity        int     // number of interchangeable servers (>= 1)
	Horizon         float64 // no arrivals are generated at or after this time (> 0)
	Seed            *int64  // nil = non-deterministic variate stream

	// FirstArrivalAtOpen makes the first patient arrive at time 0 instead of
	// after one drawn inter-arrival gap.
	FirstArrivalAtOpen bool
	// MonitorInterval is the queue sampling period; 0 means DefaultMonitorInterval.
	MonitorInterval float64
	// TraceLevel controls event-log recording; empty means trace.TraceLevelEvents.
	TraceLevel trace.TraceLevel
}

// Validate checks every parameter and names the first offending field.
// The returned error wraps sim.ErrInvalidParameter.
func (c Config) Validate() error {
	if err := validateFinitePositive("avg_inter_arrival", c.AvgInterArrival); err != nil {
		return err
	}
	if err := validateFinitePositive("avg_service_time", c.AvgServiceTime); err != nil {
		return err
	}
	if c.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be >= 1, got %d", sim.ErrInvalidParameter, c.Capacity)
	}
	if err := validateFinitePositive("horizon", c.Horizon); err != nil {
		return err
	}
	if ToTicks(c.Horizon) < 1 {
		return fmt.Errorf("%w: horizon %v is shorter than one tick", sim.ErrInvalidParameter, c.Horizon)
	}
	if c.MonitorInterval != 0 {
		if err := validateFinitePositive("monitor_interval", c.MonitorInterval); err != nil {
			return err
		}
		if ToTicks(c.MonitorInterval) < 1 {
			return fmt.Errorf("%w: monitor_interval %v is shorter than one tick", sim.ErrInvalidParameter, c.MonitorInterval)
		}
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace_level %q; valid: none, events", sim.ErrInvalidParameter, c.TraceLevel)
	}
	return nil
}

// monitorInterval returns the effective sampling period in ticks.
func (c Config) monitorInterval() int64 {
	if c.MonitorInterval == 0 {
		return ToTicks(DefaultMonitorInterval)
	}
	return ToTicks(c.MonitorInterval)
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %f", sim.ErrInvalidParameter, name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %f", sim.ErrInvalidParameter, name, val)
	}
	if val > MaxUnits {
		return fmt.Errorf("%w: %s must be at most %g, got %f", sim.ErrInvalidParameter, name, MaxUnits, val)
	}
	return nil
}

// ToTicks converts time units to ticks, rounding to the nearest tick.
func ToTicks(units float64) int64 {
	return int64(math.Round(units * TicksPerUnit))
}

// ToUnits converts ticks to time units.
func ToUnits(ticks int64) float64 {
	return float64(ticks) / TicksPerUnit
}
