// Package backend opens the persistence slot selected by configuration.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/geocoder89/neuralpulse/internal/config"
	"github.com/geocoder89/neuralpulse/internal/db"
	"github.com/geocoder89/neuralpulse/internal/redisclient"
	"github.com/geocoder89/neuralpulse/internal/repo/memory"
	"github.com/geocoder89/neuralpulse/internal/repo/object"
	"github.com/geocoder89/neuralpulse/internal/repo/postgres"
	"github.com/geocoder89/neuralpulse/internal/repo/rediskv"
	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	"github.com/geocoder89/neuralpulse/internal/repo/sqlite"
	"github.com/geocoder89/neuralpulse/internal/storage"
)

// bucket used by the file backend under PERSIST_DIR
const localBucket = "slots"

// Open returns the KV for cfg.Persist.Backend and a func releasing whatever
// connections it holds.
func Open(ctx context.Context, cfg config.Config) (slot.KV, func(), error) {
	noop := func() {}

	switch cfg.Persist.Backend {
	case "memory":
		return memory.NewSlotRepo(), noop, nil

	case "file":
		return object.NewSlotRepo(storage.NewLocalProvider(cfg.Persist.Dir), localBucket), noop, nil

	case "s3":
		provider, err := storage.NewS3Provider(storage.S3Config{
			Endpoint: cfg.S3.Endpoint,
			Region:   cfg.S3.Region,
			KeyID:    cfg.S3.KeyID,
			Secret:   cfg.S3.Secret,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("s3 session: %w", err)
		}
		return protect(object.NewSlotRepo(provider, cfg.S3.Bucket), cfg.Persist), noop, nil

	case "redis":
		client := redisclient.New(redisclient.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return protect(rediskv.New(client, "neuralpulse:"), cfg.Persist), func() { _ = client.Close() }, nil

	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DBURL())
		if err != nil {
			return nil, nil, err
		}
		return protect(postgres.NewSlotRepo(pool), cfg.Persist), pool.Close, nil

	case "sqlite":
		repo, err := sqlite.Open(cfg.Persist.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown persist backend %q", cfg.Persist.Backend)
	}
}

func protect(kv slot.KV, cfg config.PersistConfig) slot.KV {
	return slot.NewProtected(kv, slot.ProtectedConfig{
		Timeout:          time.Duration(cfg.CallTimeoutMs) * time.Millisecond,
		FailureThreshold: cfg.BreakerThreshold,
		Cooldown:         time.Duration(cfg.BreakerCooldownSec) * time.Second,
	})
}
