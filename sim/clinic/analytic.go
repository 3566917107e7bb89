package clinic

import (
	"fmt"
	"math"

	"github.com/inference-sim/clinic-sim/sim"
)

// Analytic holds the steady-state figures of an M/M/c queue.
// Times are in time units.
type Analytic struct {
	OfferedLoad float64 // λ/μ, in Erlangs
	Utilization float64 // ρ = λ/(cμ), as a fraction
	ProbWait    float64 // Erlang C: probability an arrival has to wait
	MeanWait    float64 // Wq; +Inf when unstable
	MeanQueue   float64 // Lq = λ·Wq; +Inf when unstable
	Stable      bool    // ρ < 1
}

// ErlangC computes M/M/c steady-state figures for arrival rate lambda,
// per-server service rate mu, and c servers.
func ErlangC(lambda, mu float64, c int) (Analytic, error) {
	if err := validateFinitePositive("arrival_rate", lambda); err != nil {
		return Analytic{}, err
	}
	if err := validateFinitePositive("service_rate", mu); err != nil {
		return Analytic{}, err
	}
	if c < 1 {
		return Analytic{}, fmt.Errorf("%w: servers must be >= 1, got %d", sim.ErrInvalidParameter, c)
	}

	a := lambda / mu
	rho := a / float64(c)
	out := Analytic{OfferedLoad: a, Utilization: rho}
	if rho >= 1 {
		out.ProbWait = 1
		out.MeanWait = math.Inf(1)
		out.MeanQueue = math.Inf(1)
		return out, nil
	}

	// sum_{k<c} a^k/k!, built term by term to avoid overflow in a^k and k!
	term := 1.0
	sum := 1.0
	for k := 1; k < c; k++ {
		term *= a / float64(k)
		sum += term
	}
	term *= a / float64(c) // a^c/c!
	top := term / (1 - rho)

	out.ProbWait = top / (sum + top)
	out.MeanWait = out.ProbWait / (float64(c)*mu - lambda)
	out.MeanQueue = lambda * out.MeanWait
	out.Stable = true
	return out, nil
}

// Baseline returns the M/M/c figures for cfg's mean rates. The inter-arrival
// floor is ignored, so the figures are a close approximation for short means.
func Baseline(cfg Config) (Analytic, error) {
	if err := cfg.Validate(); err != nil {
		return Analytic{}, err
	}
	return ErlangC(1/cfg.AvgInterArrival, 1/cfg.AvgServiceTime, cfg.Capacity)
}
