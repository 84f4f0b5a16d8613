package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "k", payload{Name: "a", Count: 2}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "a" || got.Count != 2 {
		t.Errorf("Get = %+v", got)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	var got payload
	err := NewMemoryCache().Get(context.Background(), "missing", &got)
	if !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss, got %v", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", payload{Name: "a"}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	now = now.Add(59 * time.Second)
	var got payload
	if err := c.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	now = now.Add(time.Second)
	if err := c.Get(ctx, "k", &got); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss after expiry, got %v", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	_ = c.Set(ctx, "a", 1, 0)
	_ = c.Set(ctx, "b", 2, 0)

	if err := c.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var n int
	if err := c.Get(ctx, "a", &n); !errors.Is(err, ErrMiss) {
		t.Errorf("a should be deleted, got %v", err)
	}
}

func TestFilterOptionsKey(t *testing.T) {
	if got := FilterOptionsKey("u1"); got != "filter-options:u1" {
		t.Errorf("FilterOptionsKey = %q", got)
	}
}
