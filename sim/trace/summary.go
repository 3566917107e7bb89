package trace

// LogSummary counts entries by kind.
type LogSummary struct {
	Total         int
	Arrivals      int
	ServiceStarts int
	ServiceEnds   int
}

// Summarize computes entry counts for an event log.
// Safe for nil or empty input (returns zero-value fields).
func Summarize(entries []Entry) LogSummary {
	var s LogSummary
	for _, e := range entries {
		s.Total++
		switch e.Kind {
		case KindArrival:
			s.Arrivals++
		case KindServiceStart:
			s.ServiceStarts++
		case KindServiceEnd:
			s.ServiceEnds++
		}
	}
	return s
}
