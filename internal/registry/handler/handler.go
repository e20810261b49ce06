// Package handler wires the registry service to HTTP. It stays thin:
// decode, resolve the caller, delegate, translate errors.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studentregistry/pkg/domain"
	dErrors "studentregistry/pkg/domain-errors"
	"studentregistry/pkg/platform/httputil"
	"studentregistry/pkg/requestcontext"
)

// Service defines the registry operations the handler depends on.
type Service interface {
	SetOwner(ctx context.Context, caller, newOwner domain.Principal) error
	RegisterStudent(ctx context.Context, caller domain.Principal, id domain.StudentID, name string) error
	UpdateStudentName(ctx context.Context, caller domain.Principal, id domain.StudentID, newName string) error
	GetStudentName(ctx context.Context, id domain.StudentID) (string, error)
	StudentExists(ctx context.Context, id domain.StudentID) (bool, error)
	Owner(ctx context.Context) (domain.Principal, error)
}

// Handler wires registry endpoints to the registry service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registry handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registry endpoints on the router. Reads are public;
// mutations expect the auth middleware to have resolved a caller principal.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registry/owner", h.HandleGetOwner)
	r.Put("/registry/owner", h.HandleSetOwner)
	r.Post("/registry/students", h.HandleRegisterStudent)
	r.Put("/registry/students/{id}/name", h.HandleUpdateStudentName)
	r.Get("/registry/students/{id}", h.HandleGetStudent)
	r.Get("/registry/students/{id}/exists", h.HandleStudentExists)
}

// HandleRegisterStudent handles POST /registry/students.
func (h *Handler) HandleRegisterStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.Decode[RegisterStudentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	id := domain.StudentID(req.ID)
	if err := h.service.RegisterStudent(ctx, caller, id, req.Name); err != nil {
		h.logError(ctx, "student registration failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "student registered",
		"request_id", requestID,
		"caller", caller,
		"student_id", id,
	)
	httputil.WriteJSON(w, http.StatusCreated, studentResponse(id, req.Name))
}

// HandleUpdateStudentName handles PUT /registry/students/{id}/name.
func (h *Handler) HandleUpdateStudentName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[UpdateStudentNameRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.UpdateStudentName(ctx, caller, id, req.Name); err != nil {
		h.logError(ctx, "student update failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "student updated",
		"request_id", requestID,
		"caller", caller,
		"student_id", id,
	)
	httputil.WriteJSON(w, http.StatusOK, studentResponse(id, req.Name))
}

// HandleGetStudent handles GET /registry/students/{id}.
func (h *Handler) HandleGetStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	name, err := h.service.GetStudentName(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, studentResponse(id, name))
}

// HandleStudentExists handles GET /registry/students/{id}/exists.
func (h *Handler) HandleStudentExists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	exists, err := h.service.StudentExists(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ExistsResponse{ID: uint64(id), Exists: exists})
}

// HandleGetOwner handles GET /registry/owner.
func (h *Handler) HandleGetOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.service.Owner(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OwnerResponse{Owner: owner.String()})
}

// HandleSetOwner handles PUT /registry/owner.
func (h *Handler) HandleSetOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller, ok := h.requireCaller(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.Decode[SetOwnerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	newOwner, err := domain.ParsePrincipal(req.NewOwner)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "new_owner must be a non-empty principal"))
		return
	}

	if err := h.service.SetOwner(ctx, caller, newOwner); err != nil {
		h.logError(ctx, "ownership transfer failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "ownership transferred",
		"request_id", requestID,
		"caller", caller,
		"new_owner", newOwner,
	)
	httputil.WriteJSON(w, http.StatusOK, OwnerResponse{Owner: newOwner.String()})
}

// requireCaller fetches the authenticated principal set by the auth
// middleware; mutating endpoints refuse anonymous requests outright.
func (h *Handler) requireCaller(w http.ResponseWriter, ctx context.Context) (domain.Principal, bool) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return domain.ZeroPrincipal, false
	}
	return caller, true
}

// pathID parses the {id} segment. Parse failures are transport-level bad
// requests; range checks stay in the service.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (domain.StudentID, bool) {
	id, err := domain.ParseStudentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "student id must be a decimal integer"))
		return 0, false
	}
	return id, true
}

func (h *Handler) logError(ctx context.Context, msg, requestID string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestID,
		"error", err,
	)
}
