package owner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"studentregistry/pkg/domain"
	"studentregistry/pkg/platform/sentinel"
)

// Postgres persists the owner slot as a single-row table. The CHECK on the
// slot column makes a second row unrepresentable.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the owner table when it does not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS registry_owner (
	slot  BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (slot),
	owner TEXT NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure registry_owner schema: %w", err)
	}
	return nil
}

func (s *Postgres) Owner(ctx context.Context) (domain.Principal, error) {
	const q = `SELECT owner FROM registry_owner WHERE slot`
	var raw string
	if err := s.db.QueryRowContext(ctx, q).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ZeroPrincipal, sentinel.ErrNotFound
		}
		return domain.ZeroPrincipal, fmt.Errorf("read owner: %w", err)
	}
	return domain.Principal(raw), nil
}

func (s *Postgres) SetOwner(ctx context.Context, p domain.Principal) error {
	const q = `
INSERT INTO registry_owner (slot, owner) VALUES (TRUE, $1)
ON CONFLICT (slot) DO UPDATE SET owner = EXCLUDED.owner`
	if _, err := s.db.ExecContext(ctx, q, p.String()); err != nil {
		return fmt.Errorf("set owner: %w", err)
	}
	return nil
}

func (s *Postgres) Init(ctx context.Context, p domain.Principal) (bool, error) {
	const q = `
INSERT INTO registry_owner (slot, owner) VALUES (TRUE, $1)
ON CONFLICT (slot) DO NOTHING`
	res, err := s.db.ExecContext(ctx, q, p.String())
	if err != nil {
		return false, fmt.Errorf("init owner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("init owner: %w", err)
	}
	return affected == 1, nil
}
