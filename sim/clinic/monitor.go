package clinic

import "github.com/inference-sim/clinic-sim/sim"

// monitorProcess samples the waiting-list length every interval for the whole run.
type monitorProcess struct {
	run *runState
}

func (p *monitorProcess) Step(s *sim.Simulator, self *sim.ProcessHandle) sim.Yield {
	p.run.result.QueueSamples = append(p.run.result.QueueSamples, QueueSample{
		Time:   s.Now(),
		Length: p.run.counter.QueueLen(),
	})
	return sim.Timeout(p.run.interval)
}
