// Package student provides the student record stores. All implementations
// perform conditional writes atomically so the service's validate-then-write
// sequence cannot half-apply.
package student

import (
	"context"
	"sync"
	"time"

	"studentregistry/internal/registry/models"
	"studentregistry/pkg/domain"
	"studentregistry/pkg/platform/sentinel"
)

// InMemory keeps student records in process memory. Used in dev mode and
// unit tests; it intentionally favors clarity over performance.
type InMemory struct {
	mu       sync.RWMutex
	students map[domain.StudentID]models.Student
}

func NewInMemory() *InMemory {
	return &InMemory{students: make(map[domain.StudentID]models.Student)}
}

// Create inserts a record, failing with sentinel.ErrAlreadyExists when the
// ID is occupied. Register must never overwrite.
func (s *InMemory) Create(_ context.Context, record *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[record.ID]; ok {
		return sentinel.ErrAlreadyExists
	}
	s.students[record.ID] = *record
	return nil
}

// Rename overwrites the name at an existing ID, failing with
// sentinel.ErrNotFound when absent. Update must never insert.
func (s *InMemory) Rename(_ context.Context, id domain.StudentID, name string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.students[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	record.Name = name
	record.UpdatedAt = now
	s.students[id] = record
	return nil
}

func (s *InMemory) FindName(_ context.Context, id domain.StudentID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.students[id]; ok {
		return record.Name, nil
	}
	return "", sentinel.ErrNotFound
}

func (s *InMemory) Exists(_ context.Context, id domain.StudentID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.students[id]
	return ok, nil
}
