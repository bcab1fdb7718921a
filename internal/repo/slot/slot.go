// Package slot defines the key-value port the state store persists its
// snapshot through, plus helpers shared by the concrete backends.
package slot

import (
	"context"
	"errors"
)

// DefaultKey is the slot the store snapshot lives under.
const DefaultKey = "neural-pulse-storage"

var ErrNotFound = errors.New("slot not found")

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks kv when it supports it and reports healthy otherwise.
func Ping(ctx context.Context, kv KV) error {
	p, ok := kv.(Pinger)
	if !ok {
		return nil
	}
	return p.Ping(ctx)
}

// ObserveFunc times one logical operation; observability.Prom.ObservePersist
// satisfies it.
type ObserveFunc func(op string, fn func() error) error

type observed struct {
	next    KV
	observe ObserveFunc
}

// Observed wraps kv so every Get/Put runs through observe. A nil observe
// returns kv unchanged.
func Observed(kv KV, observe ObserveFunc) KV {
	if observe == nil {
		return kv
	}
	return &observed{next: kv, observe: observe}
}

func (o *observed) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := o.observe("slot.get", func() error {
		var err error
		out, err = o.next.Get(ctx, key)
		// an empty slot is a normal first boot, not a backend error
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

func (o *observed) Put(ctx context.Context, key string, value []byte) error {
	return o.observe("slot.put", func() error {
		return o.next.Put(ctx, key, value)
	})
}

func (o *observed) Ping(ctx context.Context) error {
	return Ping(ctx, o.next)
}
