package cache

import (
	"testing"
	"time"
)

func TestCache_GetSetDelete(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.Set("k", 1)
	v, ok := c.Get("k")
	if !ok || v.(int) != 1 {
		t.Fatalf("expected hit, got %v %v", v, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_Expires(t *testing.T) {
	c := New(time.Millisecond)
	c.Set("k", "v")

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected a cleared")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b cleared")
	}
}

func TestCache_DeletePrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set("blog:v1:list", 1)
	c.Set("blog:v1:post:slug=a", 2)
	c.Set("other", 3)

	c.DeletePrefix("blog:")

	if _, ok := c.Get("blog:v1:list"); ok {
		t.Fatalf("expected list key dropped")
	}
	if _, ok := c.Get("blog:v1:post:slug=a"); ok {
		t.Fatalf("expected post key dropped")
	}
	if _, ok := c.Get("other"); !ok {
		t.Fatalf("expected unrelated key kept")
	}
}
