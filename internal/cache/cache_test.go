package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache("news")
	ctx := context.Background()

	data := map[string]interface{}{"summary_card": map[string]interface{}{"summary": "short"}}
	if err := c.Set(ctx, "abc", data, time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := c.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want cached result")
	}
	if got.Source != "news" || got.Key != "abc" {
		t.Errorf("unexpected cached result: %+v", got)
	}
	if _, ok := got.Data["summary_card"]; !ok {
		t.Errorf("cached data missing summary_card: %+v", got.Data)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache("news")

	got, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != nil {
		t.Fatalf("Get() = %+v, want nil on miss", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache("news")
	ctx := context.Background()

	if err := c.Set(ctx, "abc", map[string]interface{}{"x": 1}, -time.Second); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := c.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != nil {
		t.Fatalf("Get() = %+v, want nil for expired entry", got)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache("news")
	ctx := context.Background()

	c.Set(ctx, "abc", map[string]interface{}{"x": 1}, time.Minute)
	if err := c.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	got, _ := c.Get(ctx, "abc")
	if got != nil {
		t.Fatalf("Get() after Delete = %+v, want nil", got)
	}
}
