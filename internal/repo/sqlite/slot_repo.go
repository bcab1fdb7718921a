// Package sqlite provides a SQLite-backed persistence slot.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	_ "modernc.org/sqlite"
)

const slotsTableDDL = `CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SlotRepo persists slots in a single SQLite table.
type SlotRepo struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path. ":memory:" is accepted for
// tests.
func Open(path string) (*SlotRepo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != ":memory:" {
		cleanPath := filepath.Clean(path)
		if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		dsn = cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one writer; also keeps ":memory:" on a single connection
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(slotsTableDDL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}

	return &SlotRepo{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (r *SlotRepo) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}

func (r *SlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.sqlDB.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, slot.ErrNotFound
		}
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	return value, nil
}

func (r *SlotRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.sqlDB.ExecContext(
		ctx,
		`INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put slot %q: %w", key, err)
	}
	return nil
}

func (r *SlotRepo) Ping(ctx context.Context) error {
	return r.sqlDB.PingContext(ctx)
}
