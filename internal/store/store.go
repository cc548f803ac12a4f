// Package store persists the app's documents as JSON values in a DuckDB
// key-value table, mirroring the browser storage the app started out on.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/strrl/cleantime/internal/logger"
)

const (
	KeyProfile  = "recovery_user_data"
	KeyMoods    = "mood_entries"
	KeyProgress = "recovery_progress"
)

var (
	ErrNotFound    = errors.New("key not found")
	ErrNoProfile   = errors.New("no profile found, run `cleantime init` first")
	ErrInvalidMood = errors.New("invalid mood")
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db    *sql.DB
	log   *logger.Logger
	newID func() string
}

func New(ctx context.Context, db *sql.DB, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key   VARCHAR PRIMARY KEY,
			value VARCHAR NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &Store{db: db, log: log.With("component", "store"), newID: uuid.NewString}, nil
}

// Get decodes the JSON value stored under key into dst.
func (s *Store) Get(ctx context.Context, key string, dst any) error {
	return get(ctx, s.db, key, dst)
}

// Set stores v as JSON under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	if err := set(ctx, s.db, key, v); err != nil {
		return err
	}
	s.log.Debug("kv set", "key", key)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.log.Debug("kv delete", "key", key)
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *Store) withTx(ctx context.Context, fn func(q querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func get(ctx context.Context, q querier, key string, dst any) error {
	var raw string
	err := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func set(ctx context.Context, q querier, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return setRaw(ctx, q, key, string(raw))
}

func setRaw(ctx context.Context, q querier, key, raw string) error {
	if _, err := q.ExecContext(ctx, `INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
