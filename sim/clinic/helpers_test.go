package clinic

// scriptedVariates replays fixed durations (in time units), repeating the last
// value once a script runs out.
type scriptedVariates struct {
	gaps     []float64
	services []float64
	gi, si   int
}

func (v *scriptedVariates) InterArrival() int64 {
	return ToTicks(next(v.gaps, &v.gi))
}

func (v *scriptedVariates) Service() int64 {
	return ToTicks(next(v.services, &v.si))
}

func next(script []float64, i *int) float64 {
	if *i >= len(script) {
		return script[len(script)-1]
	}
	val := script[*i]
	*i++
	return val
}

func seed(s int64) *int64 { return &s }
