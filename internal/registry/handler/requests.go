package handler

import (
	"studentregistry/pkg/domain"
)

// RegisterStudentRequest is the body of POST /registry/students.
type RegisterStudentRequest struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// UpdateStudentNameRequest is the body of PUT /registry/students/{id}/name.
type UpdateStudentNameRequest struct {
	Name string `json:"name"`
}

// SetOwnerRequest is the body of PUT /registry/owner.
type SetOwnerRequest struct {
	NewOwner string `json:"new_owner"`
}

// StudentResponse mirrors one registry record on the wire.
type StudentResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ExistsResponse answers the existence probe.
type ExistsResponse struct {
	ID     uint64 `json:"id"`
	Exists bool   `json:"exists"`
}

// OwnerResponse reports the current owner principal.
type OwnerResponse struct {
	Owner string `json:"owner"`
}

func studentResponse(id domain.StudentID, name string) StudentResponse {
	return StudentResponse{ID: uint64(id), Name: name}
}
