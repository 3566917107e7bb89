// Package clinic simulates a single-stage service facility: patients arrive
// at random, wait in FIFO order for one of Capacity interchangeable servers,
// are served for a random duration, and leave. A monitor samples the waiting
// list once per time unit.
//
// RunSimulation is the entry point. It returns a RunResult holding every
// completed patient, the queue-length time series, and a display-only event
// log; Summarize derives the headline statistics from it.
package clinic

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/clinic-sim/sim"
	"github.com/inference-sim/clinic-sim/sim/trace"
)

// runState is everything the processes of one run share.
// It is created per run and handed to every process explicitly.
type runState struct {
	cfg      Config
	sim      *sim.Simulator
	counter  *sim.Resource
	variates Variates
	horizon  int64
	interval int64
	log      *trace.EventLog
	result   *RunResult
}

// admit spawns the patient process with the given identity at the current time.
func (rs *runState) admit(id int) error {
	p := newPatientProcess(rs, id)
	if _, err := rs.sim.Spawn(p.name, p); err != nil {
		return fmt.Errorf("spawning %s: %w", p.name, err)
	}
	rs.result.TotalPatients++
	return nil
}

// complete appends a finished patient's record.
func (rs *runState) complete(r PatientRecord) {
	rs.result.PatientRecords = append(rs.result.PatientRecords, r)
}

// RunSimulation validates cfg, seeds the variate stream from cfg.Seed (or the
// wall clock when nil), and executes one run.
func RunSimulation(cfg Config) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key := sim.NewRandomSimulationKey()
	if cfg.Seed != nil {
		key = sim.NewSimulationKey(*cfg.Seed)
	}
	result, err := Run(cfg, NewExponentialVariates(cfg, sim.NewPartitionedRNG(key)))
	if err != nil {
		return nil, err
	}
	result.Seed = int64(key)
	return result, nil
}

// Run executes one run with the given variate source.
// The monitor is spawned before the arrival process, so at equal times the
// queue is sampled before a new arrival joins it.
func Run(cfg Config, variates Variates) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if variates == nil {
		panic("Run: variates must not be nil")
	}

	s := sim.NewSimulator()
	counter, err := sim.NewResource(s, cfg.Capacity)
	if err != nil {
		return nil, err
	}

	rs := &runState{
		cfg:      cfg,
		sim:      s,
		counter:  counter,
		variates: variates,
		horizon:  ToTicks(cfg.Horizon),
		interval: cfg.monitorInterval(),
		log:      trace.NewEventLog(cfg.TraceLevel),
		result: &RunResult{
			Config:         cfg,
			PatientRecords: make([]PatientRecord, 0),
			QueueSamples:   make([]QueueSample, 0),
		},
	}

	if _, err := s.Spawn("monitor", &monitorProcess{run: rs}); err != nil {
		return nil, err
	}
	if _, err := s.Spawn("arrivals", &arrivalProcess{run: rs}); err != nil {
		return nil, err
	}

	logrus.Infof("Starting clinic simulation: avg_inter_arrival=%.2f, avg_service_time=%.2f, capacity=%d, horizon=%.2f",
		cfg.AvgInterArrival, cfg.AvgServiceTime, cfg.Capacity, cfg.Horizon)

	if err := s.Run(rs.horizon); err != nil {
		return nil, fmt.Errorf("clinic simulation: %w", err)
	}

	rs.result.InService = counter.InUse()
	rs.result.Waiting = counter.QueueLen()
	rs.result.EndTime = s.Now()
	rs.result.EventLog = rs.log.Entries

	logrus.Infof("Clinic simulation ended at %.2f: %d arrived, %d completed, %d in service, %d waiting",
		ToUnits(s.Now()), rs.result.TotalPatients, rs.result.Completed(), rs.result.InService, rs.result.Waiting)
	return rs.result, nil
}
