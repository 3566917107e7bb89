package clinic

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/clinic-sim/sim"
	"github.com/inference-sim/clinic-sim/sim/trace"
	"github.com/inference-sim/clinic-sim/sim/workload"
)

// scriptedConfig is a single-server clinic whose first patient arrives at
// opening, then one every 2 units, each served for 3 units, closing at 10.
func scriptedConfig() Config {
	return Config{
		AvgInterArrival:    2,
		AvgServiceTime:     3,
		Capacity:           1,
		Horizon:            10,
		FirstArrivalAtOpen: true,
	}
}

func TestRun_Scripted_ExactRecords(t *testing.T) {
	// GIVEN arrivals at 0, 2, 4, 6, 8 and 3-unit services on one server
	v := &scriptedVariates{gaps: []float64{2}, services: []float64{3}}

	// WHEN run until 10
	r, err := Run(scriptedConfig(), v)
	require.NoError(t, err)

	// THEN three patients complete, one is in service, and one waits
	want := []PatientRecord{
		{ID: 0, Name: "Patient 0", ArrivalTime: ToTicks(0), ServiceStart: ToTicks(0), Wait: 0, Service: ToTicks(3), CompletionTime: ToTicks(3)},
		{ID: 1, Name: "Patient 1", ArrivalTime: ToTicks(2), ServiceStart: ToTicks(3), Wait: ToTicks(1), Service: ToTicks(3), CompletionTime: ToTicks(6)},
		{ID: 2, Name: "Patient 2", ArrivalTime: ToTicks(4), ServiceStart: ToTicks(6), Wait: ToTicks(2), Service: ToTicks(3), CompletionTime: ToTicks(9)},
	}
	assert.Equal(t, want, r.PatientRecords)
	assert.Equal(t, 5, r.TotalPatients)
	assert.Equal(t, 1, r.InService)
	assert.Equal(t, 1, r.Waiting)
	assert.Equal(t, ToTicks(10), r.EndTime)

	// AND the monitor sampled once per unit from 0 to 9
	require.Len(t, r.QueueSamples, 10)
	for i, q := range r.QueueSamples {
		assert.Equal(t, ToTicks(float64(i)), q.Time)
	}
	assert.Equal(t, 0, r.QueueSamples[0].Length)

	// AND the event log holds 5 arrivals, 4 service starts, 3 service ends
	assert.Equal(t, trace.LogSummary{Total: 12, Arrivals: 5, ServiceStarts: 4, ServiceEnds: 3}, trace.Summarize(r.EventLog))
	assert.Equal(t, "Patient 0 arrived at minute 0.0", r.EventLog[0].String())
}

func TestRun_Scripted_Summary(t *testing.T) {
	r, err := Run(scriptedConfig(), &scriptedVariates{gaps: []float64{2}, services: []float64{3}})
	require.NoError(t, err)

	s := Summarize(r)

	assert.Equal(t, 3, s.Completed)
	assert.Equal(t, 5, s.TotalPatients)
	assert.InDelta(t, 1.0, s.MeanWait, 1e-12)
	assert.InDelta(t, 2.0, s.MaxWait, 1e-12)
	assert.InDelta(t, 3.0, s.MeanService, 1e-12)
	assert.InDelta(t, 90.0, s.Utilization, 1e-9)
	assert.InDelta(t, 0.3, s.Throughput, 1e-12)
	assert.Equal(t, 0.0, s.FractionWaitOver)
}

func TestRun_GapBeforeFirstArrival_ByDefault(t *testing.T) {
	// GIVEN the scripted clinic without an arrival at opening
	cfg := scriptedConfig()
	cfg.FirstArrivalAtOpen = false

	// WHEN run
	r, err := Run(cfg, &scriptedVariates{gaps: []float64{2}, services: []float64{3}})
	require.NoError(t, err)

	// THEN patients arrive at 2, 4, 6, 8
	assert.Equal(t, 4, r.TotalPatients)
	require.NotEmpty(t, r.PatientRecords)
	assert.Equal(t, ToTicks(2), r.PatientRecords[0].ArrivalTime)
}

func TestRun_NegativeServiceDraw_AbortsWithErrInvalidDelay(t *testing.T) {
	// GIVEN a variate source that produces a negative service duration
	v := &scriptedVariates{gaps: []float64{2}, services: []float64{-1}}

	// WHEN run
	r, err := Run(scriptedConfig(), v)

	// THEN the run aborts and no partial result is returned
	assert.Nil(t, r)
	assert.ErrorIs(t, err, sim.ErrInvalidDelay)
}

func TestRun_TraceLevelNone_EmptyEventLog(t *testing.T) {
	cfg := scriptedConfig()
	cfg.TraceLevel = trace.TraceLevelNone

	r, err := Run(cfg, &scriptedVariates{gaps: []float64{2}, services: []float64{3}})
	require.NoError(t, err)

	assert.Empty(t, r.EventLog)
	assert.Len(t, r.PatientRecords, 3, "metrics must not depend on the event log")
}

func TestRun_MonitorInterval(t *testing.T) {
	cfg := scriptedConfig()
	cfg.MonitorInterval = 2.5

	r, err := Run(cfg, &scriptedVariates{gaps: []float64{2}, services: []float64{3}})
	require.NoError(t, err)

	// samples at 0, 2.5, 5, 7.5
	require.Len(t, r.QueueSamples, 4)
	assert.Equal(t, ToTicks(7.5), r.QueueSamples[3].Time)
}

func TestRunSimulation_Conservation(t *testing.T) {
	// GIVEN a congested clinic
	cfg := Config{AvgInterArrival: 3, AvgServiceTime: 7, Capacity: 2, Horizon: 480, Seed: seed(11)}

	// WHEN run
	r, err := RunSimulation(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, r.PatientRecords)

	// THEN arrival + wait + service == completion exactly for every patient
	for _, rec := range r.PatientRecords {
		if rec.ArrivalTime+rec.Wait+rec.Service != rec.CompletionTime {
			t.Fatalf("%s: %d + %d + %d != %d", rec.Name, rec.ArrivalTime, rec.Wait, rec.Service, rec.CompletionTime)
		}
		assert.Equal(t, rec.ServiceStart-rec.ArrivalTime, rec.Wait)
		assert.GreaterOrEqual(t, rec.Wait, int64(0))
	}
}

func TestRunSimulation_CompletionsAreChronological(t *testing.T) {
	r, err := RunSimulation(Config{AvgInterArrival: 4, AvgServiceTime: 6, Capacity: 3, Horizon: 300, Seed: seed(5)})
	require.NoError(t, err)
	for i := 1; i < len(r.PatientRecords); i++ {
		assert.LessOrEqual(t, r.PatientRecords[i-1].CompletionTime, r.PatientRecords[i].CompletionTime)
	}
	for i := 1; i < len(r.QueueSamples); i++ {
		assert.Less(t, r.QueueSamples[i-1].Time, r.QueueSamples[i].Time)
	}
}

func TestRunSimulation_FIFOService(t *testing.T) {
	// GIVEN a single server, patients must start service in arrival order
	r, err := RunSimulation(Config{AvgInterArrival: 5, AvgServiceTime: 6, Capacity: 1, Horizon: 600, Seed: seed(3)})
	require.NoError(t, err)

	for i := 1; i < len(r.PatientRecords); i++ {
		prev, cur := r.PatientRecords[i-1], r.PatientRecords[i]
		assert.Less(t, prev.ID, cur.ID, "completion order must follow arrival order on one server")
		assert.LessOrEqual(t, prev.CompletionTime, cur.ServiceStart)
	}
}

func TestRunSimulation_Determinism(t *testing.T) {
	// GIVEN identical parameters and seed
	cfg := Config{AvgInterArrival: 15, AvgServiceTime: 20, Capacity: 2, Horizon: 480, Seed: seed(42)}

	// WHEN run twice
	r1, err := RunSimulation(cfg)
	require.NoError(t, err)
	r2, err := RunSimulation(cfg)
	require.NoError(t, err)

	// THEN the results are identical
	assert.Equal(t, r1, r2)
	assert.Equal(t, int64(42), r1.Seed)
}

func TestRunSimulation_DifferentSeeds_DifferentRuns(t *testing.T) {
	cfg := Config{AvgInterArrival: 15, AvgServiceTime: 20, Capacity: 2, Horizon: 480}
	cfg.Seed = seed(1)
	r1, err := RunSimulation(cfg)
	require.NoError(t, err)
	cfg.Seed = seed(2)
	r2, err := RunSimulation(cfg)
	require.NoError(t, err)

	assert.NotEqual(t, r1.PatientRecords, r2.PatientRecords)
}

func TestRunSimulation_NoSeed_ReportsSeedUsed(t *testing.T) {
	// GIVEN a run without a seed
	cfg := Config{AvgInterArrival: 15, AvgServiceTime: 20, Capacity: 2, Horizon: 120}
	r1, err := RunSimulation(cfg)
	require.NoError(t, err)

	// WHEN the reported seed is replayed
	cfg.Seed = seed(r1.Seed)
	r2, err := RunSimulation(cfg)
	require.NoError(t, err)

	// THEN the replay reproduces the records
	assert.Equal(t, r1.PatientRecords, r2.PatientRecords)
	assert.Equal(t, r1.QueueSamples, r2.QueueSamples)
}

func TestRunSimulation_ScenarioA_NoContention(t *testing.T) {
	// GIVEN arrivals far sparser than five servers can handle
	for s := int64(1); s <= 20; s++ {
		cfg := Config{AvgInterArrival: 100, AvgServiceTime: 5, Capacity: 5, Horizon: 60, Seed: seed(s)}

		// WHEN run
		r, err := RunSimulation(cfg)
		require.NoError(t, err)

		// THEN nobody waits
		sum := Summarize(r)
		assert.Equal(t, 0.0, sum.MeanWait, "seed %d", s)
		assert.Equal(t, 0, sum.MaxQueue, "seed %d", s)
	}
}

func TestRunSimulation_ScenarioB_Saturation(t *testing.T) {
	for s := int64(1); s <= 5; s++ {
		// GIVEN arrivals ten times faster than one server can serve
		cfg := Config{AvgInterArrival: 5, AvgServiceTime: 50, Capacity: 1, Horizon: 500, Seed: seed(s)}

		// WHEN run
		r, err := RunSimulation(cfg)
		require.NoError(t, err)
		sum := Summarize(r)

		// THEN mean wait is well above the mean inter-arrival time
		assert.Greater(t, sum.MeanWait, cfg.AvgInterArrival, "seed %d", s)

		// AND the queue grows: the last quarter of samples averages above the first quarter
		n := len(r.QueueSamples)
		require.GreaterOrEqual(t, n, 400)
		quarter := n / 4
		first, last := 0, 0
		for i := 0; i < quarter; i++ {
			first += r.QueueSamples[i].Length
			last += r.QueueSamples[n-quarter+i].Length
		}
		assert.Greater(t, last, first, "seed %d", s)
		assert.Greater(t, r.Waiting, 0, "seed %d", s)
	}
}

func TestRunSimulation_ScenarioC_NoArrivals(t *testing.T) {
	// GIVEN a horizon shorter than the first drawn inter-arrival gap
	cfg := Config{AvgInterArrival: 30, AvgServiceTime: 5, Capacity: 2, Seed: seed(9)}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(9))
	firstGap := workload.NewExponentialSampler(cfg.AvgInterArrival*TicksPerUnit, ToTicks(MinInterArrival)).
		Sample(rng.ForSubsystem(sim.SubsystemArrival))
	cfg.Horizon = ToUnits(firstGap) / 2

	// WHEN run
	r, err := RunSimulation(cfg)
	require.NoError(t, err)

	// THEN no patient arrived, every statistic is 0, and the monitor still ticked
	assert.Equal(t, 0, r.TotalPatients)
	assert.Empty(t, r.PatientRecords)
	assert.NotEmpty(t, r.QueueSamples)
	sum := Summarize(r)
	assert.Equal(t, 0.0, sum.MeanWait)
	assert.Equal(t, 0.0, sum.MaxWait)
	assert.Equal(t, 0.0, sum.MeanService)
	assert.Equal(t, 0.0, sum.Utilization)
}

func TestRunSimulation_ConcurrentRunsAreIndependent(t *testing.T) {
	// GIVEN the same seeded config run serially and concurrently
	cfg := Config{AvgInterArrival: 6, AvgServiceTime: 10, Capacity: 2, Horizon: 240, Seed: seed(21)}
	want, err := RunSimulation(cfg)
	require.NoError(t, err)

	results := make(chan *RunResult, 4)
	for i := 0; i < 4; i++ {
		go func() {
			r, err := RunSimulation(cfg)
			if err != nil {
				results <- nil
				return
			}
			results <- r
		}()
	}

	// THEN every concurrent run matches the serial one
	for i := 0; i < 4; i++ {
		assert.Equal(t, want, <-results)
	}
}

func TestRunSimulation_InvalidConfig_NoRun(t *testing.T) {
	r, err := RunSimulation(Config{AvgInterArrival: 0, AvgServiceTime: 5, Capacity: 1, Horizon: 10})
	assert.Nil(t, r)
	assert.ErrorIs(t, err, sim.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "avg_inter_arrival")
}

func TestRun_HugeCapacity_MemoryIndependentOfCapacity(t *testing.T) {
	// GIVEN the scripted clinic with two billion servers
	cfg := scriptedConfig()
	cfg.Capacity = 2_000_000_000

	// WHEN run
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	r, err := Run(cfg, &scriptedVariates{gaps: []float64{2}, services: []float64{3}})
	runtime.ReadMemStats(&after)
	require.NoError(t, err)

	// THEN nobody waits, the last patient is still in service, and the run stayed small
	assert.Equal(t, 5, r.TotalPatients)
	assert.Len(t, r.PatientRecords, 4)
	assert.Equal(t, 1, r.InService)
	assert.Equal(t, 0, r.Waiting)
	for _, rec := range r.PatientRecords {
		assert.Equal(t, int64(0), rec.Wait, rec.Name)
	}
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20))
}

func arrivalTimes(r *RunResult) []float64 {
	var out []float64
	for _, e := range r.EventLog {
		if e.Kind == trace.KindArrival {
			out = append(out, e.Time)
		}
	}
	return out
}

func TestRunSimulation_ServiceParameters_DoNotShiftArrivals(t *testing.T) {
	// GIVEN two clinics sharing a seed and arrival rate but not service time or servers
	fast := Config{AvgInterArrival: 10, AvgServiceTime: 5, Capacity: 2, Horizon: 300, Seed: seed(8)}
	slow := fast
	slow.AvgServiceTime = 40
	slow.Capacity = 1

	// WHEN both are run
	r1, err := RunSimulation(fast)
	require.NoError(t, err)
	r2, err := RunSimulation(slow)
	require.NoError(t, err)

	// THEN patients arrive at exactly the same times
	require.NotEmpty(t, arrivalTimes(r1))
	assert.Equal(t, r1.TotalPatients, r2.TotalPatients)
	assert.Equal(t, arrivalTimes(r1), arrivalTimes(r2))

	// AND the runs did differ downstream
	assert.NotEqual(t, r1.PatientRecords, r2.PatientRecords)
}
