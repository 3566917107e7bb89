package clinic

import (
	"fmt"

	"github.com/inference-sim/clinic-sim/sim"
	"github.com/inference-sim/clinic-sim/sim/trace"
)

type patientPhase int

const (
	phaseArriving  patientPhase = iota // about to request a server
	phaseGranted                       // server granted, service not started
	phaseInService                     // service timeout elapsed
)

// patientProcess models one patient: arrive, wait for a server, get served, leave.
type patientProcess struct {
	run   *runState
	id    int
	name  string
	phase patientPhase

	arrival int64
	start   int64
	service int64
}

func newPatientProcess(run *runState, id int) *patientProcess {
	return &patientProcess{
		run:  run,
		id:   id,
		name: fmt.Sprintf("Patient %d", id),
	}
}

func (p *patientProcess) Step(s *sim.Simulator, self *sim.ProcessHandle) sim.Yield {
	switch p.phase {
	case phaseArriving:
		p.arrival = s.Now()
		p.run.log.Record(trace.Entry{Kind: trace.KindArrival, Time: ToUnits(p.arrival), Patient: p.name})
		p.phase = phaseGranted
		return sim.Request(p.run.counter)

	case phaseGranted:
		p.start = s.Now()
		wait := p.start - p.arrival
		p.run.log.Record(trace.Entry{Kind: trace.KindServiceStart, Time: ToUnits(p.start), Patient: p.name, Wait: ToUnits(wait)})
		p.service = p.run.variates.Service()
		p.phase = phaseInService
		return sim.Timeout(p.service)

	case phaseInService:
		record := PatientRecord{
			ID:             p.id,
			Name:           p.name,
			ArrivalTime:    p.arrival,
			ServiceStart:   p.start,
			Wait:           p.start - p.arrival,
			Service:        p.service,
			CompletionTime: s.Now(),
		}
		p.run.complete(record)
		p.run.log.Record(trace.Entry{Kind: trace.KindServiceEnd, Time: ToUnits(s.Now()), Patient: p.name, Service: ToUnits(p.service)})
		if err := p.run.counter.Release(self); err != nil {
			return sim.Fail(err)
		}
		return sim.Done()

	default:
		return sim.Fail(fmt.Errorf("%s: unknown phase %d", p.name, p.phase))
	}
}
