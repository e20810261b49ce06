// Package requestid assigns a correlation ID to every request.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"studentregistry/pkg/requestcontext"
)

// Header carries the correlation ID on responses and may supply one on
// requests from upstream proxies.
const Header = "X-Request-ID"

// Middleware reuses an incoming correlation ID or mints a new one, storing
// it in the context and echoing it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
