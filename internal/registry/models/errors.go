package models

import dErrors "studentregistry/pkg/domain-errors"

// The registry's flat error taxonomy. Services return exactly these values
// so callers can branch with errors.Is while transports map the codes.
var (
	// ErrNotAuthorized rejects mutating calls from anyone but the owner.
	ErrNotAuthorized = dErrors.New(dErrors.CodeForbidden, "caller is not the registry owner")

	// ErrInvalidID rejects IDs outside [1, 1000000].
	ErrInvalidID = dErrors.New(dErrors.CodeInvalidInput, "student id must be between 1 and 1000000")

	// ErrInvalidName rejects empty names and names of 50 bytes or more.
	ErrInvalidName = dErrors.New(dErrors.CodeInvalidInput, "student name must be between 1 and 49 characters")

	// ErrStudentExists rejects registration under an occupied ID.
	ErrStudentExists = dErrors.New(dErrors.CodeConflict, "student id is already registered")

	// ErrStudentNotFound reports lookups and updates on missing IDs.
	ErrStudentNotFound = dErrors.New(dErrors.CodeNotFound, "student not found")
)
