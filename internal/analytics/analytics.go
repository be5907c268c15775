// Package analytics provides fire-and-forget event tracking for the studio.
// Tracking never returns an error to the caller: the authoring flow must not
// be affected by an analytics failure.
package analytics

import "course-studio/internal/logger"

// Tracker records a named event with an optional payload.
type Tracker interface {
	Track(event string, payload map[string]any)
}

// LogTracker writes every event to the structured log. It is the default
// tracker; there is no delivery to an external analytics backend.
type LogTracker struct {
	log *logger.Logger
}

func NewLogTracker(log *logger.Logger) *LogTracker {
	return &LogTracker{log: log}
}

func (t *LogTracker) Track(event string, payload map[string]any) {
	if t == nil || t.log == nil {
		return
	}
	t.log.Info("analytics event", "event", event, "payload", payload)
}

// NopTracker discards everything. Used in tests.
type NopTracker struct{}

func (NopTracker) Track(string, map[string]any) {}

// MultiTracker fans an event out to several trackers.
type MultiTracker []Tracker

func (m MultiTracker) Track(event string, payload map[string]any) {
	for _, tracker := range m {
		if tracker != nil {
			tracker.Track(event, payload)
		}
	}
}
