package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a PostgreSQL implementation of Store backed by a single
// key/value table. Schema:
//
//	CREATE TABLE IF NOT EXISTS kv_entries (
//	    key        TEXT PRIMARY KEY,
//	    value      BYTEA NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Get retrieves the value for a key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("get key %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value under a key.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`

	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set key %q: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}

// ListKeys returns all keys with the given prefix.
func (s *PostgresStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT key FROM kv_entries WHERE key LIKE $1 ORDER BY key`

	rows, err := s.pool.Query(ctx, query, escapeLikePrefix(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("list keys with prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// escapeLikePrefix escapes LIKE wildcards so a key prefix such as
// "historical_weather_" matches literally instead of as a pattern.
func escapeLikePrefix(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix)
}

// Ensure PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)
