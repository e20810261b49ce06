// Package service implements the registry's state-transition logic:
// single-owner write access, field-level validation, and the event contract
// around each mutation.
//
// Every operation validates fully before issuing exactly one mutating store
// call, so a failed precondition never leaves partial state. The host
// environment (HTTP shell here, any deterministic runtime in general)
// supplies the caller principal explicitly on each mutating call.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"studentregistry/internal/registry/events"
	"studentregistry/internal/registry/metrics"
	"studentregistry/internal/registry/models"
	"studentregistry/pkg/domain"
	dErrors "studentregistry/pkg/domain-errors"
	"studentregistry/pkg/platform/sentinel"
	"studentregistry/pkg/requestcontext"
)

// StudentStore is the durable mapping from student ID to record. Conditional
// writes are atomic within the store: Create refuses occupied IDs and Rename
// refuses missing ones.
type StudentStore interface {
	Create(ctx context.Context, record *models.Student) error
	Rename(ctx context.Context, id domain.StudentID, name string, now time.Time) error
	FindName(ctx context.Context, id domain.StudentID) (string, error)
	Exists(ctx context.Context, id domain.StudentID) (bool, error)
}

// OwnerStore is the single mutable slot holding the authorized principal.
type OwnerStore interface {
	Owner(ctx context.Context) (domain.Principal, error)
	SetOwner(ctx context.Context, p domain.Principal) error
	Init(ctx context.Context, p domain.Principal) (bool, error)
}

// EventPublisher receives the structured event emitted after each
// successful mutation.
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event) error
}

// Registry orchestrates the student record registry.
type Registry struct {
	students  StudentStore
	owners    OwnerStore
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(r *Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

func WithPublisher(publisher EventPublisher) Option {
	return func(r *Registry) { r.publisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// New constructs a Registry.
func New(students StudentStore, owners OwnerStore, opts ...Option) (*Registry, error) {
	if students == nil {
		return nil, errors.New("student store is required")
	}
	if owners == nil {
		return nil, errors.New("owner store is required")
	}
	r := &Registry{
		students: students,
		owners:   owners,
		tracer:   otel.Tracer("studentregistry/registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r, nil
}

// Initialize claims the owner slot for the deploying principal. It runs once
// per deployment; on restarts against a durable store it is a no-op.
func (r *Registry) Initialize(ctx context.Context, deployer domain.Principal) error {
	ctx, span := r.tracer.Start(ctx, "registry.Initialize")
	defer span.End()

	if deployer.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "deployer principal is required")
	}
	claimed, err := r.owners.Init(ctx, deployer)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to initialize owner")
	}
	if claimed {
		r.logger.InfoContext(ctx, "registry initialized", "owner", deployer)
	}
	return nil
}

// SetOwner transfers ownership. Only the current owner may call it; handing
// the slot back to the same principal is a valid no-op transfer.
func (r *Registry) SetOwner(ctx context.Context, caller, newOwner domain.Principal) error {
	ctx, span := r.tracer.Start(ctx, "registry.SetOwner")
	defer span.End()

	previous, err := r.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if newOwner.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "new owner principal is required")
	}

	if err := r.owners.SetOwner(ctx, newOwner); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to set owner")
	}

	r.metrics.IncrementOwnerTransfers()
	event := r.newEvent(ctx, events.TypeOwnerTransferred, caller)
	event.PreviousOwner = previous
	event.NewOwner = newOwner
	r.emit(ctx, event)
	return nil
}

// RegisterStudent inserts a new record. Checks run in contract order: owner,
// ID range, name length, uniqueness; the first failure wins and nothing is
// written.
func (r *Registry) RegisterStudent(ctx context.Context, caller domain.Principal, id domain.StudentID, name string) error {
	ctx, span := r.tracer.Start(ctx, "registry.RegisterStudent")
	defer span.End()

	if _, err := r.requireOwner(ctx, caller); err != nil {
		return err
	}

	record, err := models.NewStudent(id, name, requestcontext.Now(ctx))
	if err != nil {
		return err
	}

	if err := r.students.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return models.ErrStudentExists
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to register student")
	}

	r.metrics.IncrementRegistered()
	event := r.newEvent(ctx, events.TypeStudentRegistered, caller)
	event.StudentID = id
	event.Name = name
	r.emit(ctx, event)
	return nil
}

// UpdateStudentName overwrites the name of an existing record. Same check
// order as registration, with presence instead of uniqueness.
func (r *Registry) UpdateStudentName(ctx context.Context, caller domain.Principal, id domain.StudentID, newName string) error {
	ctx, span := r.tracer.Start(ctx, "registry.UpdateStudentName")
	defer span.End()

	if _, err := r.requireOwner(ctx, caller); err != nil {
		return err
	}
	if !id.Valid() {
		return models.ErrInvalidID
	}
	if err := models.ValidateName(newName); err != nil {
		return err
	}

	if err := r.students.Rename(ctx, id, newName, requestcontext.Now(ctx)); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.ErrStudentNotFound
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update student name")
	}

	r.metrics.IncrementUpdated()
	event := r.newEvent(ctx, events.TypeStudentUpdated, caller)
	event.StudentID = id
	event.Name = newName
	r.emit(ctx, event)
	return nil
}

// GetStudentName looks up a record's name. Reads require no authorization.
func (r *Registry) GetStudentName(ctx context.Context, id domain.StudentID) (string, error) {
	ctx, span := r.tracer.Start(ctx, "registry.GetStudentName")
	defer span.End()
	start := time.Now()
	defer r.metrics.ObserveLookup(start)

	if !id.Valid() {
		return "", models.ErrInvalidID
	}
	name, err := r.students.FindName(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", models.ErrStudentNotFound
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up student")
	}
	return name, nil
}

// StudentExists reports record presence. Out-of-range IDs are simply absent,
// not an error.
func (r *Registry) StudentExists(ctx context.Context, id domain.StudentID) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "registry.StudentExists")
	defer span.End()

	if !id.Valid() {
		return false, nil
	}
	exists, err := r.students.Exists(ctx, id)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check student")
	}
	return exists, nil
}

// Owner returns the current registry owner.
func (r *Registry) Owner(ctx context.Context) (domain.Principal, error) {
	ctx, span := r.tracer.Start(ctx, "registry.Owner")
	defer span.End()

	owner, err := r.owners.Owner(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domain.ZeroPrincipal, dErrors.New(dErrors.CodeInvariantViolation, "registry owner is not initialized")
		}
		return domain.ZeroPrincipal, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read owner")
	}
	return owner, nil
}

// requireOwner resolves the current owner and rejects every other caller.
func (r *Registry) requireOwner(ctx context.Context, caller domain.Principal) (domain.Principal, error) {
	owner, err := r.Owner(ctx)
	if err != nil {
		return domain.ZeroPrincipal, err
	}
	if caller.IsZero() || caller != owner {
		r.metrics.IncrementDenied()
		return domain.ZeroPrincipal, models.ErrNotAuthorized
	}
	return owner, nil
}

func (r *Registry) newEvent(ctx context.Context, t events.Type, actor domain.Principal) events.Event {
	return events.Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: requestcontext.Now(ctx),
		Actor:     actor,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
}

// emit delivers an event, logging failures instead of surfacing them. Events
// are observability, never correctness.
func (r *Registry) emit(ctx context.Context, event events.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Emit(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "event emission failed",
			"event", event.Type,
			"event_id", event.ID,
			"error", err,
		)
	}
}
