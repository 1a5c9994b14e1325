package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Schema creates the table used by PostgresStore.
const Schema = `CREATE TABLE IF NOT EXISTS web_sessions (
	id         TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	profile    TEXT NOT NULL,
	expires_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresStore struct {
	db  DB
	ttl time.Duration
	now func() time.Time
}

func NewPostgresStore(db DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

// Migrate creates the sessions table when missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate sessions: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (Values, error) {
	var token, profile string
	err := s.db.QueryRow(ctx, `SELECT token, profile FROM web_sessions WHERE id=$1 AND (expires_at IS NULL OR expires_at > now())`, id).
		Scan(&token, &profile)
	if errors.Is(err, pgx.ErrNoRows) {
		return Values{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return Values{KeyToken: token, KeyUser: profile}, nil
}

func (s *PostgresStore) Save(ctx context.Context, id string, values Values) error {
	if !values.complete() {
		return ErrIncomplete
	}
	var expiresAt *time.Time
	if s.ttl > 0 {
		t := s.now().Add(s.ttl)
		expiresAt = &t
	}
	_, err := s.db.Exec(ctx, `INSERT INTO web_sessions (id, token, profile, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET token=EXCLUDED.token, profile=EXCLUDED.profile, expires_at=EXCLUDED.expires_at, updated_at=now()`,
		id, values[KeyToken], values[KeyUser], expiresAt)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM web_sessions WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
