package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/geocoder89/neuralpulse/internal/repo/slot"
)

func TestSlotRepo_GetPutDelete(t *testing.T) {
	r := NewSlotRepo()
	ctx := context.Background()

	if _, err := r.Get(ctx, "k"); !errors.Is(err, slot.ErrNotFound) {
		t.Fatalf("expected slot.ErrNotFound, got %v", err)
	}

	in := []byte("hello")
	if err := r.Put(ctx, "k", in); err != nil {
		t.Fatalf("put: %v", err)
	}
	in[0] = 'j'

	out, err := r.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(out) != "hello" {
		t.Fatalf("stored value changed through caller slice: %q", out)
	}

	out[0] = 'x'
	again, _ := r.Get(ctx, "k")
	if string(again) != "hello" {
		t.Fatalf("stored value changed through returned slice: %q", again)
	}

	r.Delete("k")
	if _, err := r.Get(ctx, "k"); !errors.Is(err, slot.ErrNotFound) {
		t.Fatalf("expected slot.ErrNotFound after delete, got %v", err)
	}
}

func TestSlotRepo_CanceledContext(t *testing.T) {
	r := NewSlotRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Put(ctx, "k", []byte("v")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestObserved_RecordsOpsAndKeepsNotFound(t *testing.T) {
	var ops []string
	kv := slot.Observed(NewSlotRepo(), func(op string, fn func() error) error {
		ops = append(ops, op)
		return fn()
	})
	ctx := context.Background()

	if _, err := kv.Get(ctx, "k"); !errors.Is(err, slot.ErrNotFound) {
		t.Fatalf("expected slot.ErrNotFound through decorator, got %v", err)
	}
	if err := kv.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}

	if len(ops) != 2 || ops[0] != "slot.get" || ops[1] != "slot.put" {
		t.Fatalf("unexpected ops: %v", ops)
	}
	if err := slot.Ping(ctx, kv); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
