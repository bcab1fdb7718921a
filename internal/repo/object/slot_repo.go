// Package object stores persistence slots as objects in a storage.StorageProvider
// bucket, one JSON object per key.
package object

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	"github.com/geocoder89/neuralpulse/internal/storage"
)

type SlotRepo struct {
	provider storage.StorageProvider
	bucket   string
}

func NewSlotRepo(provider storage.StorageProvider, bucket string) *SlotRepo {
	return &SlotRepo{provider: provider, bucket: bucket}
}

func objectKey(key string) string {
	return key + ".json"
}

func (r *SlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := r.provider.Get(ctx, r.bucket, objectKey(key))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, slot.ErrNotFound
		}
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", key, err)
	}
	return data, nil
}

func (r *SlotRepo) Put(ctx context.Context, key string, value []byte) error {
	if err := r.provider.Put(ctx, r.bucket, objectKey(key), bytes.NewReader(value), "application/json", "no-cache"); err != nil {
		return fmt.Errorf("put slot %q: %w", key, err)
	}
	return nil
}

func (r *SlotRepo) Ping(ctx context.Context) error {
	return r.provider.Ping(ctx, r.bucket)
}
