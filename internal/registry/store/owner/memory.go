// Package owner provides the single-slot owner stores. The slot holds the
// one principal authorized to mutate the registry.
package owner

import (
	"context"
	"sync"

	"studentregistry/pkg/domain"
	"studentregistry/pkg/platform/sentinel"
)

// InMemory keeps the owner slot in process memory.
type InMemory struct {
	mu    sync.RWMutex
	owner domain.Principal
	set   bool
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// Owner returns the current owner, or sentinel.ErrNotFound before
// initialization.
func (s *InMemory) Owner(_ context.Context) (domain.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return domain.ZeroPrincipal, sentinel.ErrNotFound
	}
	return s.owner, nil
}

// SetOwner overwrites the owner slot.
func (s *InMemory) SetOwner(_ context.Context, p domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = p
	s.set = true
	return nil
}

// Init sets the owner only when the slot is still empty and reports whether
// it did. Bootstrap across restarts relies on this being a no-op once set.
func (s *InMemory) Init(_ context.Context, p domain.Principal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		return false, nil
	}
	s.owner = p
	s.set = true
	return true, nil
}
