package events

import (
	"context"
	"errors"
)

// MultiPublisher fans one event out to several sinks (e.g. the broker and
// the local event log). All sinks are attempted; errors are joined.
type MultiPublisher struct {
	sinks []Publisher
}

func NewMultiPublisher(sinks ...Publisher) *MultiPublisher {
	return &MultiPublisher{sinks: sinks}
}

func (p *MultiPublisher) Emit(ctx context.Context, event Event) error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
