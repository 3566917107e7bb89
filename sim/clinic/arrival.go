package clinic

import (
	"github.com/inference-sim/clinic-sim/sim"
)

// arrivalProcess spawns patients at exponentially distributed intervals
// until the clock reaches the horizon. Patients already spawned are not
// bound by the horizon.
type arrivalProcess struct {
	run     *runState
	nextID  int
	started bool
}

func (p *arrivalProcess) Step(s *sim.Simulator, self *sim.ProcessHandle) sim.Yield {
	if !p.started {
		p.started = true
		if !p.run.cfg.FirstArrivalAtOpen {
			return sim.Timeout(p.run.variates.InterArrival())
		}
	}
	if s.Now() >= p.run.horizon {
		return sim.Done()
	}
	if err := p.run.admit(p.nextID); err != nil {
		return sim.Fail(err)
	}
	p.nextID++
	return sim.Timeout(p.run.variates.InterArrival())
}
