package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/neuralpulse/internal/repo/slot"
)

// SlotRepo keeps slots in process memory. Values are copied on the way in
// and out so callers cannot mutate stored bytes.
type SlotRepo struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewSlotRepo() *SlotRepo {
	return &SlotRepo{
		items: make(map[string][]byte),
	}
}

func (r *SlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	v, ok := r.items[key]
	r.mu.RUnlock()

	if !ok {
		return nil, slot.ErrNotFound
	}

	return append([]byte(nil), v...), nil
}

func (r *SlotRepo) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.items[key] = append([]byte(nil), value...)
	r.mu.Unlock()

	return nil
}

// Delete clears a slot.
func (r *SlotRepo) Delete(key string) {
	r.mu.Lock()
	delete(r.items, key)
	r.mu.Unlock()
}
