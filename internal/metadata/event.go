package metadata

import "log/slog"

// EventKind classifies the outcome a source reports for one file.
type EventKind string

const (
	// EventUnavailable means the source had nothing to offer (no sidecar, no
	// pattern match, no tags). It is not an error.
	EventUnavailable EventKind = "source_unavailable"
	// EventMalformed means the input existed but could not be parsed.
	EventMalformed EventKind = "source_malformed"
	// EventUnreadable means the audio file itself could not be opened.
	EventUnreadable EventKind = "file_unreadable"
	// EventDegraded means the source produced output with some parts missing,
	// such as technical properties when no prober is available.
	EventDegraded EventKind = "source_degraded"
)

// Event is a structured outcome returned by a source or the orchestrator
// rather than written to a global logger.
type Event struct {
	Kind     EventKind
	Source   string
	FilePath string
	Message  string
	Err      error
}

// Level returns the slog level the event should be logged at.
func (e Event) Level() slog.Level {
	switch e.Kind {
	case EventMalformed, EventUnreadable:
		return slog.LevelWarn
	case EventDegraded:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Warning reports whether the event is surfaced as a warning.
func (e Event) Warning() bool {
	return e.Level() >= slog.LevelWarn
}

// Reason returns the error text when present, otherwise the message.
func (e Event) Reason() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}
