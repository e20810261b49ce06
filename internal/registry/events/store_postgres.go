package events

import (
	"context"
	"database/sql"
	"fmt"

	"studentregistry/pkg/domain"
)

// PostgresStore persists the event log in an append-only table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the event log table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS registry_events (
	id             UUID PRIMARY KEY,
	event_type     TEXT NOT NULL,
	occurred_at    TIMESTAMPTZ NOT NULL,
	actor          TEXT NOT NULL,
	student_id     BIGINT NOT NULL DEFAULT 0,
	name           TEXT NOT NULL DEFAULT '',
	previous_owner TEXT NOT NULL DEFAULT '',
	new_owner      TEXT NOT NULL DEFAULT '',
	request_id     TEXT NOT NULL DEFAULT '',
	client_ip      TEXT NOT NULL DEFAULT '',
	user_agent     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS registry_events_student_idx ON registry_events (student_id);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure registry_events schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	const q = `
INSERT INTO registry_events
	(id, event_type, occurred_at, actor, student_id, name, previous_owner, new_owner, request_id, client_ip, user_agent)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := s.db.ExecContext(ctx, q,
		event.ID,
		string(event.Type),
		event.Timestamp,
		event.Actor.String(),
		int64(event.StudentID),
		event.Name,
		event.PreviousOwner.String(),
		event.NewOwner.String(),
		event.RequestID,
		event.ClientIP,
		event.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByStudent(ctx context.Context, id domain.StudentID) ([]Event, error) {
	const q = `
SELECT id, event_type, occurred_at, actor, student_id, name, previous_owner, new_owner, request_id, client_ip, user_agent
FROM registry_events
WHERE student_id = $1
ORDER BY occurred_at`
	rows, err := s.db.QueryContext(ctx, q, int64(id))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e         Event
			eventType string
			studentID int64
			actor     string
			prev, nw  string
		)
		if err := rows.Scan(&e.ID, &eventType, &e.Timestamp, &actor, &studentID, &e.Name, &prev, &nw, &e.RequestID, &e.ClientIP, &e.UserAgent); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Type = Type(eventType)
		e.Actor = domain.Principal(actor)
		e.StudentID = domain.StudentID(studentID)
		e.PreviousOwner = domain.Principal(prev)
		e.NewOwner = domain.Principal(nw)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}
