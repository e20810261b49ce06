package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors.
//
// These represent factual states about stored records, not validation
// failures:
// - ErrNotFound: record (or owner slot) does not exist in the store
// - ErrAlreadyExists: a record with that key is already present
// - ErrInvalidState: store in wrong state for requested operation
// - ErrUnavailable: backing store temporarily unreachable
//
// For validation errors (bad input, denied callers), use pkg/domain-errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidState  = errors.New("invalid state")
	ErrUnavailable   = errors.New("unavailable")
)
