// Package domain defines the identifier types shared across the registry.
// Keeping them typed (rather than raw strings/ints) prevents accidental
// cross-wiring between caller identities and record keys.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Principal is the opaque identity of a caller, supplied by the host
// environment (JWT subject at the HTTP boundary). The registry only ever
// compares principals for equality; it attaches no structure to them.
type Principal string

// ZeroPrincipal is the absent identity. Mutating operations reject it.
const ZeroPrincipal Principal = ""

func (p Principal) String() string { return string(p) }

// IsZero reports whether the principal is unset.
func (p Principal) IsZero() bool { return p == ZeroPrincipal }

// ParsePrincipal validates a raw principal string from the transport layer.
// Principals are opaque but must be non-empty and free of whitespace so they
// survive round-trips through tokens and log lines.
func ParsePrincipal(raw string) (Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ZeroPrincipal, fmt.Errorf("principal must not be empty")
	}
	if strings.ContainsAny(raw, " \t\n") {
		return ZeroPrincipal, fmt.Errorf("principal must not contain whitespace")
	}
	return Principal(raw), nil
}

// StudentID is the unique key of a student record.
type StudentID uint64

const (
	// MinStudentID and MaxStudentID bound the accepted key space.
	MinStudentID StudentID = 1
	MaxStudentID StudentID = 1_000_000
)

// Valid reports whether the ID falls inside the accepted key space.
func (id StudentID) Valid() bool {
	return id >= MinStudentID && id <= MaxStudentID
}

func (id StudentID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseStudentID parses a decimal ID from a URL path segment. It only parses;
// range validation is the service's job so the error contract stays in one
// place.
func ParseStudentID(raw string) (StudentID, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid student id %q: %w", raw, err)
	}
	return StudentID(n), nil
}
