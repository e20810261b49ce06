package registry

import (
	"log/slog"

	"studentregistry/internal/registry/handler"
	"studentregistry/internal/registry/service"
)

// Service exposes the student registry operations.
type Service = service.Registry

// Handler wires HTTP endpoints to the registry service.
type Handler = handler.Handler

// NewService constructs the registry service with required dependencies.
func NewService(students service.StudentStore, owners service.OwnerStore, opts ...service.Option) (*Service, error) {
	return service.New(students, owners, opts...)
}

// NewHandler constructs an HTTP handler for registry routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
