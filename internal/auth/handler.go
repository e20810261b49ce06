// Package auth exposes the token endpoint. Clients exchange the deployment's
// provisioning secret for a short-lived principal token; the registry itself
// never sees the secret, only the resulting principal.
package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studentregistry/internal/jwtauth"
	"studentregistry/pkg/domain"
	dErrors "studentregistry/pkg/domain-errors"
	"studentregistry/pkg/platform/httputil"
	"studentregistry/pkg/requestcontext"
	"studentregistry/pkg/secrets"
)

// DefaultTokenTTL bounds how long an issued principal token stays valid.
const DefaultTokenTTL = time.Hour

// TokenRequest is the body of POST /auth/token.
type TokenRequest struct {
	Principal string `json:"principal"`
	Secret    string `json:"secret"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Handler issues principal tokens against the provisioning secret.
type Handler struct {
	jwt        *jwtauth.JWTService
	secretHash string
	ttl        time.Duration
	logger     *slog.Logger
}

func New(jwt *jwtauth.JWTService, secretHash string, ttl time.Duration, logger *slog.Logger) *Handler {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Handler{jwt: jwt, secretHash: secretHash, ttl: ttl, logger: logger}
}

// Register mounts the token endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/token", h.HandleToken)
}

// HandleToken handles POST /auth/token.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[TokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	principal, err := domain.ParsePrincipal(req.Principal)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "principal must be a non-empty identifier"))
		return
	}
	if err := secrets.Verify(req.Secret, h.secretHash); err != nil {
		h.logger.WarnContext(ctx, "token exchange rejected",
			"request_id", requestID,
			"principal", principal,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid provisioning secret"))
		return
	}

	token, err := h.jwt.GeneratePrincipalToken(principal, h.ttl)
	if err != nil {
		h.logger.ErrorContext(ctx, "token generation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.ttl.Seconds()),
	})
}
