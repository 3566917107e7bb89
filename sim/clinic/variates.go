package clinic

import (
	"math/rand"

	"github.com/inference-sim/clinic-sim/sim"
	"github.com/inference-sim/clinic-sim/sim/workload"
)

// Variates supplies the random durations a run consumes, in ticks.
// It is passed into the run explicitly so the stream can be seeded and replayed.
type Variates interface {
	// InterArrival returns the gap until the next patient arrives.
	InterArrival() int64
	// Service returns one patient's service duration.
	Service() int64
}

// exponentialVariates draws both durations from exponential distributions,
// each from its own RNG subsystem.
type exponentialVariates struct {
	arrival    workload.DurationSampler
	service    workload.DurationSampler
	arrivalRNG *rand.Rand
	serviceRNG *rand.Rand
}

// NewExponentialVariates creates the Markovian variate source for cfg.
// Inter-arrival gaps are floored at MinInterArrival; service durations are not floored.
func NewExponentialVariates(cfg Config, rng *sim.PartitionedRNG) Variates {
	return &exponentialVariates{
		arrival:    workload.NewExponentialSampler(cfg.AvgInterArrival*TicksPerUnit, ToTicks(MinInterArrival)),
		service:    workload.NewExponentialSampler(cfg.AvgServiceTime*TicksPerUnit, 0),
		arrivalRNG: rng.ForSubsystem(sim.SubsystemArrival),
		serviceRNG: rng.ForSubsystem(sim.SubsystemService),
	}
}

func (v *exponentialVariates) InterArrival() int64 {
	return v.arrival.Sample(v.arrivalRNG)
}

func (v *exponentialVariates) Service() int64 {
	return v.service.Sample(v.serviceRNG)
}
