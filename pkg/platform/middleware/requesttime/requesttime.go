// Package requesttime pins a request-scoped "now". All operations within a
// single request observe the same timestamp, keeping domain timestamps and
// emitted events consistent.
package requesttime

import (
	"net/http"
	"time"

	"studentregistry/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and
// stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
