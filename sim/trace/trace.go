package trace

// TraceLevel controls whether the event log is recorded.
type TraceLevel string

const (
	// TraceLevelNone disables the event log (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents records every arrival, service start, and service end.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to events
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// EventLog collects entries in the order they happen.
type EventLog struct {
	Level   TraceLevel
	Entries []Entry
}

// NewEventLog creates an EventLog ready for recording.
func NewEventLog(level TraceLevel) *EventLog {
	if level == "" {
		level = TraceLevelEvents
	}
	return &EventLog{
		Level:   level,
		Entries: make([]Entry, 0),
	}
}

// Record appends an entry unless recording is disabled.
func (l *EventLog) Record(e Entry) {
	if l.Level == TraceLevelNone {
		return
	}
	l.Entries = append(l.Entries, e)
}

// Tail returns the last n entries of entries (all of them if n <= 0 or n exceeds the length).
// The returned slice aliases entries.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
