// Package workload provides the random-variate samplers that drive arrivals
// and service demand. Samplers are pure functions of the *rand.Rand they are
// handed; they keep no stream of their own, so a run's determinism is fully
// decided by how the caller seeds and partitions its RNGs.
package workload

import (
	"math"
	"math/rand"
)

// DurationSampler generates durations in ticks.
type DurationSampler interface {
	// Sample returns the next duration in ticks. Never negative.
	Sample(rng *rand.Rand) int64
}

// ExponentialSampler generates exponentially-distributed durations (CV=1),
// floored at a minimum value.
type ExponentialSampler struct {
	meanTicks  float64 // mean duration in ticks
	floorTicks int64   // smallest value ever returned
}

// NewExponentialSampler creates an ExponentialSampler with the given mean and floor, in ticks.
// A zero floor still guarantees a non-negative result.
func NewExponentialSampler(meanTicks float64, floorTicks int64) *ExponentialSampler {
	if meanTicks <= 0 || math.IsNaN(meanTicks) || math.IsInf(meanTicks, 0) {
		panic("NewExponentialSampler: mean must be a finite positive number")
	}
	if floorTicks < 0 {
		floorTicks = 0
	}
	return &ExponentialSampler{meanTicks: meanTicks, floorTicks: floorTicks}
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	val := math.Round(rng.ExpFloat64() * s.meanTicks)
	// Guard against overflow from an extreme draw
	if val >= math.MaxInt64/2 {
		return math.MaxInt64 / 2
	}
	d := int64(val)
	if d < s.floorTicks {
		return s.floorTicks
	}
	return d
}

// Mean returns the configured mean in ticks (before flooring).
func (s *ExponentialSampler) Mean() float64 {
	return s.meanTicks
}

// Floor returns the smallest duration the sampler produces.
func (s *ExponentialSampler) Floor() int64 {
	return s.floorTicks
}
