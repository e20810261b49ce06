package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"studentregistry/internal/registry/events"
	"studentregistry/internal/registry/models"
	"studentregistry/internal/registry/store/owner"
	"studentregistry/internal/registry/store/student"
	"studentregistry/pkg/domain"
	dErrors "studentregistry/pkg/domain-errors"
	"studentregistry/pkg/requestcontext"
)

const (
	deployer = domain.Principal("deployer-1")
	outsider = domain.Principal("mallory")
)

type RegistrySuite struct {
	suite.Suite
	students *student.InMemory
	owners   *owner.InMemory
	capture  *events.Capture
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.students = student.NewInMemory()
	s.owners = owner.NewInMemory()
	s.capture = events.NewCapture()

	var err error
	s.registry, err = New(s.students, s.owners,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithPublisher(s.capture),
	)
	s.Require().NoError(err)

	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.Require().NoError(s.registry.Initialize(s.ctx, deployer))
}

func (s *RegistrySuite) TestNew() {
	s.Run("nil student store rejected", func() {
		_, err := New(nil, s.owners)
		s.Error(err)
	})

	s.Run("nil owner store rejected", func() {
		_, err := New(s.students, nil)
		s.Error(err)
	})
}

func (s *RegistrySuite) TestInitialize() {
	s.Run("sets owner to deployer", func() {
		got, err := s.registry.Owner(s.ctx)
		s.Require().NoError(err)
		s.Equal(deployer, got)
	})

	s.Run("repeat initialize does not steal the slot", func() {
		s.Require().NoError(s.registry.Initialize(s.ctx, outsider))

		got, err := s.registry.Owner(s.ctx)
		s.Require().NoError(err)
		s.Equal(deployer, got)
	})

	s.Run("zero deployer rejected", func() {
		err := s.registry.Initialize(s.ctx, domain.ZeroPrincipal)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *RegistrySuite) TestRegisterStudent() {
	s.Run("round-trip", func() {
		s.Require().NoError(s.registry.RegisterStudent(s.ctx, deployer, 123, "Alice Smith"))

		name, err := s.registry.GetStudentName(s.ctx, 123)
		s.Require().NoError(err)
		s.Equal("Alice Smith", name)

		exists, err := s.registry.StudentExists(s.ctx, 123)
		s.Require().NoError(err)
		s.True(exists)
	})

	s.Run("emits student-registered", func() {
		evts := s.capture.Events()
		s.Require().Len(evts, 1)
		s.Equal(events.TypeStudentRegistered, evts[0].Type)
		s.Equal(domain.StudentID(123), evts[0].StudentID)
		s.Equal("Alice Smith", evts[0].Name)
		s.Equal(deployer, evts[0].Actor)
		s.NotEmpty(evts[0].ID)
	})

	s.Run("duplicate id rejected, stored name unchanged", func() {
		err := s.registry.RegisterStudent(s.ctx, deployer, 123, "Bob")
		s.Require().ErrorIs(err, models.ErrStudentExists)

		name, err := s.registry.GetStudentName(s.ctx, 123)
		s.Require().NoError(err)
		s.Equal("Alice Smith", name)
	})
}

func (s *RegistrySuite) TestRegisterValidationOrder() {
	s.Run("non-owner rejected before any field check", func() {
		// ID and name are both invalid too; authorization must win.
		err := s.registry.RegisterStudent(s.ctx, outsider, 0, "")
		s.Require().ErrorIs(err, models.ErrNotAuthorized)

		exists, existsErr := s.registry.StudentExists(s.ctx, 0)
		s.Require().NoError(existsErr)
		s.False(exists)
		s.Empty(s.capture.Events())
	})

	s.Run("id range checked before name", func() {
		err := s.registry.RegisterStudent(s.ctx, deployer, 1_000_001, "")
		s.Require().ErrorIs(err, models.ErrInvalidID)
	})

	s.Run("id zero rejected", func() {
		err := s.registry.RegisterStudent(s.ctx, deployer, 0, "Alice")
		s.Require().ErrorIs(err, models.ErrInvalidID)
	})

	s.Run("empty name rejected", func() {
		err := s.registry.RegisterStudent(s.ctx, deployer, 5, "")
		s.Require().ErrorIs(err, models.ErrInvalidName)
	})

	s.Run("50 char name rejected, 49 accepted", func() {
		err := s.registry.RegisterStudent(s.ctx, deployer, 5, strings.Repeat("a", 50))
		s.Require().ErrorIs(err, models.ErrInvalidName)

		s.Require().NoError(s.registry.RegisterStudent(s.ctx, deployer, 5, strings.Repeat("a", 49)))
	})

	s.Run("failed register leaves no state behind", func() {
		exists, err := s.registry.StudentExists(s.ctx, 1_000_001)
		s.Require().NoError(err)
		s.False(exists)
	})
}

func (s *RegistrySuite) TestUpdateStudentName() {
	s.Require().NoError(s.registry.RegisterStudent(s.ctx, deployer, 123, "Alice Smith"))
	s.capture.Reset()

	s.Run("update flow", func() {
		s.Require().NoError(s.registry.UpdateStudentName(s.ctx, deployer, 123, "Alice Johnson"))

		name, err := s.registry.GetStudentName(s.ctx, 123)
		s.Require().NoError(err)
		s.Equal("Alice Johnson", name)
	})

	s.Run("emits student-updated", func() {
		evts := s.capture.Events()
		s.Require().Len(evts, 1)
		s.Equal(events.TypeStudentUpdated, evts[0].Type)
		s.Equal(domain.StudentID(123), evts[0].StudentID)
		s.Equal("Alice Johnson", evts[0].Name)
	})

	s.Run("non-owner rejected", func() {
		err := s.registry.UpdateStudentName(s.ctx, outsider, 123, "Eve")
		s.Require().ErrorIs(err, models.ErrNotAuthorized)

		name, getErr := s.registry.GetStudentName(s.ctx, 123)
		s.Require().NoError(getErr)
		s.Equal("Alice Johnson", name)
	})

	s.Run("out-of-range id rejected", func() {
		err := s.registry.UpdateStudentName(s.ctx, deployer, 1_000_001, "X")
		s.Require().ErrorIs(err, models.ErrInvalidID)
	})

	s.Run("invalid name rejected", func() {
		err := s.registry.UpdateStudentName(s.ctx, deployer, 123, strings.Repeat("x", 50))
		s.Require().ErrorIs(err, models.ErrInvalidName)
	})

	s.Run("missing id reports not found, nothing inserted", func() {
		err := s.registry.UpdateStudentName(s.ctx, deployer, 999, "X")
		s.Require().ErrorIs(err, models.ErrStudentNotFound)

		exists, existsErr := s.registry.StudentExists(s.ctx, 999)
		s.Require().NoError(existsErr)
		s.False(exists)
	})
}

func (s *RegistrySuite) TestReads() {
	s.Require().NoError(s.registry.RegisterStudent(s.ctx, deployer, 42, "Grace"))

	s.Run("out-of-range lookup is invalid id", func() {
		_, err := s.registry.GetStudentName(s.ctx, 0)
		s.Require().ErrorIs(err, models.ErrInvalidID)

		_, err = s.registry.GetStudentName(s.ctx, 1_000_001)
		s.Require().ErrorIs(err, models.ErrInvalidID)
	})

	s.Run("out-of-range existence is simply false", func() {
		exists, err := s.registry.StudentExists(s.ctx, 1_000_001)
		s.Require().NoError(err)
		s.False(exists)
	})

	s.Run("reads are idempotent", func() {
		first, err := s.registry.GetStudentName(s.ctx, 42)
		s.Require().NoError(err)
		second, err := s.registry.GetStudentName(s.ctx, 42)
		s.Require().NoError(err)
		s.Equal(first, second)
	})

	s.Run("missing id reports not found", func() {
		_, err := s.registry.GetStudentName(s.ctx, 999)
		s.Require().ErrorIs(err, models.ErrStudentNotFound)
	})
}

func (s *RegistrySuite) TestOwnershipTransfer() {
	successor := domain.Principal("successor-1")

	s.Run("non-owner cannot transfer", func() {
		err := s.registry.SetOwner(s.ctx, outsider, outsider)
		s.Require().ErrorIs(err, models.ErrNotAuthorized)
	})

	s.Run("zero new owner rejected", func() {
		err := s.registry.SetOwner(s.ctx, deployer, domain.ZeroPrincipal)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("owner transfers and loses access", func() {
		s.Require().NoError(s.registry.SetOwner(s.ctx, deployer, successor))

		got, err := s.registry.Owner(s.ctx)
		s.Require().NoError(err)
		s.Equal(successor, got)

		err = s.registry.RegisterStudent(s.ctx, deployer, 7, "Hopper")
		s.Require().ErrorIs(err, models.ErrNotAuthorized)

		s.Require().NoError(s.registry.RegisterStudent(s.ctx, successor, 7, "Hopper"))
	})

	s.Run("transfer emitted owner-transferred", func() {
		var transfer *events.Event
		for _, e := range s.capture.Events() {
			if e.Type == events.TypeOwnerTransferred {
				e := e
				transfer = &e
			}
		}
		s.Require().NotNil(transfer)
		s.Equal(deployer, transfer.PreviousOwner)
		s.Equal(successor, transfer.NewOwner)
	})

	s.Run("transfer to self is idempotent", func() {
		s.Require().NoError(s.registry.SetOwner(s.ctx, successor, successor))

		got, err := s.registry.Owner(s.ctx)
		s.Require().NoError(err)
		s.Equal(successor, got)
	})
}

// TestEventTimestampsPinnedToRequestTime verifies events carry the request
// time from context, keeping replays deterministic.
func (s *RegistrySuite) TestEventTimestampsPinnedToRequestTime() {
	pinned := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), pinned)

	s.Require().NoError(s.registry.RegisterStudent(ctx, deployer, 11, "Ada"))

	evts := s.capture.Events()
	s.Require().Len(evts, 1)
	s.Equal(pinned, evts[0].Timestamp)
}
