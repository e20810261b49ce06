// Package metadata extracts client metadata (IP, User-Agent) for event
// enrichment. Raw User-Agent strings are noisy, so they are condensed to a
// browser/OS summary before entering the event log.
package metadata

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"studentregistry/pkg/requestcontext"
)

// ClientMetadata stores the client IP and a condensed User-Agent summary in
// the request context. Apply early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(),
			ClientIPFromRequest(r),
			SummarizeUserAgent(r.Header.Get("User-Agent")),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest extracts the real client IP, handling proxies and
// load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs; the first one is the
	// original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// SummarizeUserAgent condenses a raw User-Agent into "browser/version (os)".
// Non-browser agents (curl, SDKs) fall back to the raw string, truncated.
func SummarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		const maxRaw = 64
		if len(raw) > maxRaw {
			return raw[:maxRaw]
		}
		return raw
	}
	if os := ua.OS(); os != "" {
		return fmt.Sprintf("%s/%s (%s)", name, version, os)
	}
	return fmt.Sprintf("%s/%s", name, version)
}
