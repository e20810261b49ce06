package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studentregistry/internal/registry/models"
	"studentregistry/pkg/domain"
	"studentregistry/pkg/platform/sentinel"
)

// Postgres persists student records in PostgreSQL. Each mutation is a single
// conditional statement, so the host's one-call-at-a-time contract holds
// even under concurrent HTTP traffic.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the students table when it does not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS students (
	id         BIGINT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure students schema: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, record *models.Student) error {
	const q = `
INSERT INTO students (id, name, created_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`
	res, err := s.db.ExecContext(ctx, q, int64(record.ID), record.Name, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrAlreadyExists
	}
	return nil
}

func (s *Postgres) Rename(ctx context.Context, id domain.StudentID, name string, now time.Time) error {
	const q = `UPDATE students SET name = $2, updated_at = $3 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, int64(id), name, now)
	if err != nil {
		return fmt.Errorf("rename student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename student: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindName(ctx context.Context, id domain.StudentID) (string, error) {
	const q = `SELECT name FROM students WHERE id = $1`
	var name string
	if err := s.db.QueryRowContext(ctx, q, int64(id)).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("find student name: %w", err)
	}
	return name, nil
}

func (s *Postgres) Exists(ctx context.Context, id domain.StudentID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, q, int64(id)).Scan(&exists); err != nil {
		return false, fmt.Errorf("student exists: %w", err)
	}
	return exists, nil
}
