// Package postgres stores persistence slots in the kv_slots table.
package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the part of *pgxpool.Pool the repo uses.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

type SlotRepo struct {
	pool querier
}

func NewSlotRepo(pool querier) *SlotRepo {
	return &SlotRepo{
		pool: pool,
	}
}

func (r *SlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := r.pool.QueryRow(ctx, `SELECT value FROM kv_slots WHERE key = $1`, key).Scan(&value)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, slot.ErrNotFound
		}

		return nil, err
	}

	return value, nil
}

func (r *SlotRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO kv_slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			updated_at = NOW()`,
		key, value,
	)

	return err
}

func (r *SlotRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
