package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCountStore_SetGet(t *testing.T) {
	store := NewMemoryCountStore(time.Minute)
	ctx := context.Background()

	if err := store.Set(ctx, "alert", "doctor", 3, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, ok, err := store.Get(ctx, "alert", "doctor", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if count != 5 {
		t.Errorf("expected count 5, got %d", count)
	}
}

func TestMemoryCountStore_Miss(t *testing.T) {
	store := NewMemoryCountStore(time.Minute)

	_, ok, err := store.Get(context.Background(), "message", "nurse", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestMemoryCountStore_Invalidate(t *testing.T) {
	store := NewMemoryCountStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "alert", "nurse", 2, 7)
	if err := store.Invalidate(ctx, "alert", "nurse", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, ok, _ := store.Get(ctx, "alert", "nurse", 2)
	if ok {
		t.Fatal("expected miss after invalidation")
	}
}

func TestMemoryCountStore_Expiry(t *testing.T) {
	store := NewMemoryCountStore(10 * time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "alert", "doctor", 1, 3)
	time.Sleep(20 * time.Millisecond)

	_, ok, _ := store.Get(ctx, "alert", "doctor", 1)
	if ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestMemoryCountStore_KeysIsolated(t *testing.T) {
	store := NewMemoryCountStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "alert", "doctor", 1, 4)
	store.Set(ctx, "message", "doctor", 1, 9)

	count, ok, _ := store.Get(ctx, "alert", "doctor", 1)
	if !ok || count != 4 {
		t.Errorf("expected alert count 4, got %d (hit=%v)", count, ok)
	}
	count, ok, _ = store.Get(ctx, "message", "doctor", 1)
	if !ok || count != 9 {
		t.Errorf("expected message count 9, got %d (hit=%v)", count, ok)
	}
}

func TestCountKey(t *testing.T) {
	if got := countKey("alert", "doctor", 3); got != "counts:alert:doctor:3" {
		t.Errorf("countKey = %q", got)
	}
}
