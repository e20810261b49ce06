package events

import (
	"context"
	"log/slog"
)

// Worker consumes events from a channel and appends them to a Store. It
// decouples the mutation path from event-log persistence: the service emits
// into the channel and moves on.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run processes events until the context is cancelled. Append failures are
// logged and skipped; the event log is an observability aid, not a source of
// truth.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "event log append failed",
					"event", event.Type,
					"event_id", event.ID,
					"error", err,
				)
			}
		}
	}
}

// ChannelPublisher bridges the Publisher interface onto the worker's inbox.
// Emit never blocks: when the buffer is full the event is dropped and
// reported, keeping mutations fast under backpressure.
type ChannelPublisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewChannelPublisher(inbox chan<- Event, logger *slog.Logger) *ChannelPublisher {
	return &ChannelPublisher{inbox: inbox, logger: logger}
}

func (p *ChannelPublisher) Emit(ctx context.Context, event Event) error {
	select {
	case p.inbox <- event:
		return nil
	default:
		p.logger.WarnContext(ctx, "event buffer full, dropping event",
			"event", event.Type,
			"event_id", event.ID,
		)
		return nil
	}
}
