package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"studentregistry/internal/registry/handler/mocks"
	"studentregistry/internal/registry/models"
	"studentregistry/pkg/domain"
	"studentregistry/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/registry-mocks.go -package=mocks Service
type RegistryHandlerSuite struct {
	suite.Suite
}

func TestRegistryHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistryHandlerSuite))
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, logger).Register(r)
	return r, mockService
}

func asCaller(req *http.Request, caller domain.Principal) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	return buf
}

func (s *RegistryHandlerSuite) TestRegisterStudent() {
	s.Run("success returns 201", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			RegisterStudent(gomock.Any(), domain.Principal("owner-1"), domain.StudentID(123), "Alice Smith").
			Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/registry/students",
			jsonBody(s.T(), RegisterStudentRequest{ID: 123, Name: "Alice Smith"}))
		req = asCaller(req, "owner-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusCreated, w.Code)

		var resp StudentResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal(uint64(123), resp.ID)
		s.Equal("Alice Smith", resp.Name)
	})

	s.Run("anonymous request gets 401 without touching the service", func() {
		router, _ := newTestRouter(s.T())

		req := httptest.NewRequest(http.MethodPost, "/registry/students",
			jsonBody(s.T(), RegisterStudentRequest{ID: 123, Name: "Alice Smith"}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("non-owner caller gets 403", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			RegisterStudent(gomock.Any(), domain.Principal("mallory"), domain.StudentID(123), "Alice Smith").
			Return(models.ErrNotAuthorized)

		req := httptest.NewRequest(http.MethodPost, "/registry/students",
			jsonBody(s.T(), RegisterStudentRequest{ID: 123, Name: "Alice Smith"}))
		req = asCaller(req, "mallory")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("duplicate id gets 409", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			RegisterStudent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.ErrStudentExists)

		req := httptest.NewRequest(http.MethodPost, "/registry/students",
			jsonBody(s.T(), RegisterStudentRequest{ID: 123, Name: "Bob"}))
		req = asCaller(req, "owner-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("malformed body gets 400", func() {
		router, _ := newTestRouter(s.T())

		req := httptest.NewRequest(http.MethodPost, "/registry/students",
			bytes.NewBufferString(`{"id":`))
		req = asCaller(req, "owner-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *RegistryHandlerSuite) TestUpdateStudentName() {
	s.Run("success returns updated record", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			UpdateStudentName(gomock.Any(), domain.Principal("owner-1"), domain.StudentID(123), "Alice Johnson").
			Return(nil)

		req := httptest.NewRequest(http.MethodPut, "/registry/students/123/name",
			jsonBody(s.T(), UpdateStudentNameRequest{Name: "Alice Johnson"}))
		req = asCaller(req, "owner-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)

		var resp StudentResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("Alice Johnson", resp.Name)
	})

	s.Run("missing student gets 404", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			UpdateStudentName(gomock.Any(), gomock.Any(), domain.StudentID(999), "X").
			Return(models.ErrStudentNotFound)

		req := httptest.NewRequest(http.MethodPut, "/registry/students/999/name",
			jsonBody(s.T(), UpdateStudentNameRequest{Name: "X"}))
		req = asCaller(req, "owner-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("non-numeric id gets 400 without touching the service", func() {
		router, _ := newTestRouter(s.T())

		req := httptest.NewRequest(http.MethodPut, "/registry/students/abc/name",
			jsonBody(s.T(), UpdateStudentNameRequest{Name: "X"}))
		req = asCaller(req, "owner-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *RegistryHandlerSuite) TestGetStudent() {
	s.Run("found", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			GetStudentName(gomock.Any(), domain.StudentID(123)).
			Return("Alice Smith", nil)

		req := httptest.NewRequest(http.MethodGet, "/registry/students/123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)

		var resp StudentResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("Alice Smith", resp.Name)
	})

	s.Run("invalid id range surfaces the taxonomy error", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			GetStudentName(gomock.Any(), domain.StudentID(2_000_000)).
			Return("", models.ErrInvalidID)

		req := httptest.NewRequest(http.MethodGet, "/registry/students/2000000", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("reads need no authentication", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			GetStudentName(gomock.Any(), domain.StudentID(123)).
			Return("Alice Smith", nil)

		req := httptest.NewRequest(http.MethodGet, "/registry/students/123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)
	})
}

func (s *RegistryHandlerSuite) TestStudentExists() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().
		StudentExists(gomock.Any(), domain.StudentID(7)).
		Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/registry/students/7/exists", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var resp ExistsResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.True(resp.Exists)
}

func (s *RegistryHandlerSuite) TestOwner() {
	s.Run("get owner", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			Owner(gomock.Any()).
			Return(domain.Principal("owner-1"), nil)

		req := httptest.NewRequest(http.MethodGet, "/registry/owner", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)

		var resp OwnerResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("owner-1", resp.Owner)
	})

	s.Run("transfer owner", func() {
		router, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			SetOwner(gomock.Any(), domain.Principal("owner-1"), domain.Principal("successor-1")).
			Return(nil)

		req := httptest.NewRequest(http.MethodPut, "/registry/owner",
			jsonBody(s.T(), SetOwnerRequest{NewOwner: "successor-1"}))
		req = asCaller(req, "owner-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("empty new owner gets 400", func() {
		router, _ := newTestRouter(s.T())

		req := httptest.NewRequest(http.MethodPut, "/registry/owner",
			jsonBody(s.T(), SetOwnerRequest{NewOwner: ""}))
		req = asCaller(req, "owner-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		s.Equal(http.StatusBadRequest, w.Code)
	})
}
