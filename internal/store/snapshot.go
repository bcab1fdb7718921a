package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/geocoder89/neuralpulse/internal/repo/slot"
)

// snapshotVersion is the envelope version written next to the state, the
// same shape the browser store used: {"state": {...}, "version": 0}.
const snapshotVersion = 0

var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrUnreadableSnapshot marks slot content that is not a valid envelope.
	ErrUnreadableSnapshot = errors.New("unreadable snapshot")
)

type envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

func EncodeSnapshot(st State) ([]byte, error) {
	b, err := json.Marshal(envelope{State: st, Version: snapshotVersion})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

func DecodeSnapshot(b []byte) (State, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return State{}, fmt.Errorf("decode snapshot: %w: %w", ErrUnreadableSnapshot, err)
	}
	if env.Version != snapshotVersion {
		return State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return env.State, nil
}

// SlotPersister stores the snapshot as one value under a fixed key.
type SlotPersister struct {
	kv  slot.KV
	key string
}

func NewSlotPersister(kv slot.KV, key string) *SlotPersister {
	if key == "" {
		key = slot.DefaultKey
	}
	return &SlotPersister{kv: kv, key: key}
}

func (p *SlotPersister) Key() string {
	return p.key
}

func (p *SlotPersister) Load(ctx context.Context) (State, error) {
	b, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return State{}, err
	}
	return DecodeSnapshot(b)
}

func (p *SlotPersister) Save(ctx context.Context, st State) error {
	b, err := EncodeSnapshot(st)
	if err != nil {
		return err
	}
	return p.kv.Put(ctx, p.key, b)
}

func (p *SlotPersister) Ping(ctx context.Context) error {
	return slot.Ping(ctx, p.kv)
}
