// Package auth provides the bearer-token middleware that resolves the
// caller principal. The registry treats identity as opaque; this is the one
// place where a transport credential becomes a domain.Principal.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"studentregistry/pkg/domain"
	dErrors "studentregistry/pkg/domain-errors"
	"studentregistry/pkg/platform/httputil"
	"studentregistry/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the principal it was
// issued to.
type TokenValidator interface {
	ValidatePrincipalToken(tokenString string) (domain.Principal, error)
}

// ResolveCaller validates the Authorization header when present and stores
// the caller principal in the request context. Requests without a header
// continue anonymously; handlers for mutating routes reject anonymous
// callers themselves, so read endpoints stay public.
func ResolveCaller(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authorization header must use the Bearer scheme"))
				return
			}

			caller, err := validator.ValidatePrincipalToken(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "invalid bearer token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx := requestcontext.WithCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
