package sim

import (
	"fmt"
	"time"
)

// LogEntry is one line in the synthesized monitoring log feed.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Component string `json:"component"`
	Message   string `json:"message"`
}

// Logs synthesizes the trailing log feed, newest first. Level skews
// heavily to info with occasional warn/error, and each line's spacing
// from the previous one comes from per-index noise.
func (s *Simulator) Logs(count int) []LogEntry {
	now := s.now()
	out := make([]LogEntry, 0, count)
	offset := time.Duration(0)
	for i := 0; i < count; i++ {
		level := "info"
		switch roll := fieldNoise(i, "level"); {
		case roll > 0.95:
			level = "error"
		case roll > 0.80:
			level = "warn"
		}
		msgs := logTemplatesByLevel[level]
		msg := msgs[randIndex(fieldSeed(i, "variant"), len(msgs))]
		comp := logComponents[randIndex(fieldSeed(i, "model"), len(logComponents))]

		offset += time.Duration((2 + fieldNoise(i, "span")*40) * float64(time.Second))
		out = append(out, LogEntry{
			Timestamp: now.Add(-offset).UTC().Format(time.RFC3339),
			Level:     level,
			Component: comp,
			Message:   msg,
		})
	}
	return out
}

// ActivityEvent is one row in the dashboard activity feed.
type ActivityEvent struct {
	Timestamp string `json:"timestamp"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
}

// Activity synthesizes the recent tenant activity feed, newest first.
func (s *Simulator) Activity(count int) []ActivityEvent {
	now := s.now()
	out := make([]ActivityEvent, 0, count)
	offset := time.Duration(0)
	for i := 0; i < count; i++ {
		tenant := tenantCatalog[randIndex(fieldSeed(i, "tenant"), len(tenantCatalog))]
		tpl := activityTemplates[randIndex(fieldSeed(i, "variant"), len(activityTemplates))]
		subject := fmt.Sprintf("job-%04d", randIndex(fieldSeed(i, "offset"), jobCount))

		offset += time.Duration((1 + fieldNoise(i, "age")*25) * float64(time.Minute))
		out = append(out, ActivityEvent{
			Timestamp: now.Add(-offset).UTC().Format(time.RFC3339),
			Actor:     tenant.Name,
			Action:    fmt.Sprintf(tpl, subject),
		})
	}
	return out
}
