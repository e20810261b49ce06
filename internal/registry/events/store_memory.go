package events

import (
	"context"
	"sync"

	"studentregistry/pkg/domain"
)

// InMemoryStore keeps the event log in process memory. Used in dev mode and
// unit tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByStudent(_ context.Context, id domain.StudentID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.StudentID == id {
			out = append(out, e)
		}
	}
	return out, nil
}
