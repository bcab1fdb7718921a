// Package rediskv stores persistence slots as plain Redis string keys.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geocoder89/neuralpulse/internal/redisclient"
	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	"github.com/redis/go-redis/v9"
)

// stringStore is the part of *redis.Client the repo uses.
type stringStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

type SlotRepo struct {
	rdb    stringStore
	prefix string
}

// New returns a repo whose keys are prefix+key, so several deployments can
// share one Redis database.
func New(client *redisclient.Client, prefix string) *SlotRepo {
	return &SlotRepo{rdb: client.Raw(), prefix: prefix}
}

func (r *SlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, slot.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", r.prefix+key, err)
	}
	return b, nil
}

// Put writes the value without expiry.
func (r *SlotRepo) Put(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", r.prefix+key, err)
	}
	return nil
}

func (r *SlotRepo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
