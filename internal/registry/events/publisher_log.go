package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes events as structured log lines. It is the dev-mode
// fallback when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "registry event",
		"event", event.Type,
		"event_id", event.ID,
		"actor", event.Actor,
		"student_id", event.StudentID,
		"name", event.Name,
		"previous_owner", event.PreviousOwner,
		"new_owner", event.NewOwner,
		"request_id", event.RequestID,
	)
	return nil
}
