package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/comedolab/comedo/pkg/comedo/internalerr"
)

// SQLite is a Store backed by a SQLite file, so a restarted bot can still
// redeem explanation buttons sent before the restart.
type SQLite struct {
	db     *sql.DB
	ttl    time.Duration
	tokens *tokens
	now    func() time.Time
}

// OpenSQLite opens (and if needed initializes) a SQLite-backed store with
// WAL mode enabled.
func OpenSQLite(ctx context.Context, path string, ttl time.Duration) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS pending (
	token TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pending_created ON pending(created_at);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{
		db:     db,
		ttl:    ttl,
		tokens: newTokens(),
		now:    time.Now,
	}, nil
}

// Put implements Store.
func (s *SQLite) Put(ctx context.Context, p Pending) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode pending: %w", err)
	}

	token := s.tokens.next()
	now := s.now()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO pending (token, created_at, payload) VALUES (?, ?, ?)",
		token, now.Unix(), string(payload))
	if err != nil {
		return "", fmt.Errorf("store pending: %v: %w", err, internalerr.ErrStoreUnavailable)
	}

	// Sweep expired rows while we are here.
	cutoff := now.Add(-s.ttl).Unix()
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pending WHERE created_at < ?", cutoff); err != nil {
		return "", fmt.Errorf("sweep pending: %v: %w", err, internalerr.ErrStoreUnavailable)
	}

	return token, nil
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, token string) (Pending, error) {
	var createdAt int64
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at, payload FROM pending WHERE token = ?", token).
		Scan(&createdAt, &payload)
	if err == sql.ErrNoRows {
		return Pending{}, internalerr.ErrNotFound
	}
	if err != nil {
		return Pending{}, fmt.Errorf("load pending: %v: %w", err, internalerr.ErrStoreUnavailable)
	}

	if s.now().Sub(time.Unix(createdAt, 0)) > s.ttl {
		_ = s.Delete(ctx, token)
		return Pending{}, internalerr.ErrExpired
	}

	var p Pending
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return Pending{}, fmt.Errorf("decode pending: %w", err)
	}
	return p, nil
}

// Delete implements Store.
func (s *SQLite) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pending WHERE token = ?", token)
	return err
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}
