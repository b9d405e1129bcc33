package cache

import (
	"context"
	"testing"
	"time"

	"github.com/biznexus-ai/backend/internal/domain"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryResponseCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	want := domain.QueryResponse{Response: "hello", Agent: "General Agent"}
	if err := c.Set(ctx, "q1", &want); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := c.Get(ctx, "q1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Response != want.Response || got.Agent != want.Agent {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryResponseCache(10 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "q1", &domain.QueryResponse{Response: "hi"})
	time.Sleep(30 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "q1"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestMemoryCacheDistinctQueries(t *testing.T) {
	c := NewMemoryResponseCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "a", &domain.QueryResponse{Response: "first"})
	_ = c.Set(ctx, "b", &domain.QueryResponse{Response: "second"})

	got, ok, _ := c.Get(ctx, "a")
	if !ok || got.Response != "first" {
		t.Errorf("query a = %+v, want first", got)
	}
}

func TestMemoryCacheReturnsCopy(t *testing.T) {
	c := NewMemoryResponseCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "q", &domain.QueryResponse{Response: "original"})
	got, _, _ := c.Get(ctx, "q")
	got.Response = "mutated"

	again, _, _ := c.Get(ctx, "q")
	if again.Response != "original" {
		t.Error("callers must not be able to mutate cached entries")
	}
}

func TestMemoryCacheClose(t *testing.T) {
	c := NewMemoryResponseCache(time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "q", &domain.QueryResponse{Response: "kept"})
	c.Close()
	c.Close()

	if got, ok, _ := c.Get(ctx, "q"); !ok || got.Response != "kept" {
		t.Errorf("entries must survive Close, got %+v ok=%v", got, ok)
	}
}
