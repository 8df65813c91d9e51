package audit

import (
	"context"
	"log/slog"
	"sync"
)

// LogSink writes events to the structured log. It is the fallback when no
// broker is configured.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Publish(ctx context.Context, event Event) error {
	s.log.InfoContext(ctx, "audit",
		"event_id", event.ID,
		"action", string(event.Action),
		"subject", event.Subject,
		"email", event.Email,
		"request_id", event.RequestID,
		"detail", event.Detail,
	)
	return nil
}

// MemorySink collects events for inspection in tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
