package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "studentregistry/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "bad_request" {
			t.Fatalf("expected error code bad_request, got %q", body["error"])
		}
		if body["error_description"] != "invalid input" {
			t.Fatalf("expected error_description to be returned for bad request")
		}
	})

	t.Run("status mapping covers the registry taxonomy", func(t *testing.T) {
		cases := []struct {
			code dErrors.Code
			want int
		}{
			{dErrors.CodeForbidden, http.StatusForbidden},
			{dErrors.CodeNotFound, http.StatusNotFound},
			{dErrors.CodeConflict, http.StatusConflict},
			{dErrors.CodeUnauthorized, http.StatusUnauthorized},
		}
		for _, tc := range cases {
			w := httptest.NewRecorder()
			WriteError(w, dErrors.New(tc.code, "x"))
			if w.Code != tc.want {
				t.Fatalf("code %s: expected status %d, got %d", tc.code, tc.want, w.Code)
			}
		}
	})
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body decodes", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice"}`))
		req, ok := Decode[payload](w, r, nil, r.Context(), "req-1")
		if !ok {
			t.Fatalf("expected decode to succeed")
		}
		if req.Name != "Alice" {
			t.Fatalf("expected Alice, got %q", req.Name)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nmae":"Alice"}`))
		if _, ok := Decode[payload](w, r, nil, r.Context(), "req-1"); ok {
			t.Fatalf("expected decode to fail on unknown field")
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}
