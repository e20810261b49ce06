// Package events defines the registry's structured event contract and the
// publishers that carry it. Events are informational: they never feed back
// into registry state, and a failing publisher must not fail the mutation
// that emitted the event.
package events

import (
	"context"
	"time"

	"studentregistry/pkg/domain"
)

// Type names one registry event. The values are part of the wire contract
// consumed by downstream audit tooling.
type Type string

const (
	TypeStudentRegistered Type = "student-registered"
	TypeStudentUpdated    Type = "student-updated"
	TypeOwnerTransferred  Type = "owner-transferred"
)

// Event is emitted after each successful mutation. Keep it transport-agnostic
// so stores and sinks can fan out.
type Event struct {
	ID        string           `json:"id"`
	Type      Type             `json:"event"`
	Timestamp time.Time        `json:"timestamp"`
	Actor     domain.Principal `json:"actor"`

	// Student mutation payload (register/update).
	StudentID domain.StudentID `json:"student_id,omitempty"`
	Name      string           `json:"name,omitempty"`

	// Ownership transfer payload.
	PreviousOwner domain.Principal `json:"previous_owner,omitempty"`
	NewOwner      domain.Principal `json:"new_owner,omitempty"`

	// Request correlation, filled from context at emit time.
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Publisher delivers events to an external sink. Implementations must be
// safe for concurrent use.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Store persists the event log for later inspection.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByStudent(ctx context.Context, id domain.StudentID) ([]Event, error)
}
