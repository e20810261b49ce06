// Package models holds the registry's record types and its client-visible
// error contract.
package models

import (
	"time"

	"studentregistry/pkg/domain"
)

// maxNameLen mirrors the registry's historical bound: names of length 50 or
// more are rejected, so the longest accepted name is 49 bytes. The boundary
// is part of the client-visible contract and must not be "fixed".
const maxNameLen = 50

// Student is one registry record. Records are created by registration,
// renamed by update, and never deleted.
type Student struct {
	ID        domain.StudentID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStudent validates and builds a record. Validation order matches the
// registry contract: ID range first, then name length.
func NewStudent(id domain.StudentID, name string, now time.Time) (*Student, error) {
	if !id.Valid() {
		return nil, ErrInvalidID
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Student{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

// ValidateName enforces the name bound: non-empty and strictly under 50
// bytes.
func ValidateName(name string) error {
	if len(name) == 0 || len(name) >= maxNameLen {
		return ErrInvalidName
	}
	return nil
}

// Rename applies a validated name change.
func (s *Student) Rename(name string, now time.Time) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.Name = name
	s.UpdatedAt = now
	return nil
}
