package redis

import (
	"context"
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	client, _ := newMiniredisClient(t)

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "fund:viagem:", []byte(`{"balance":"380"}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "fund:viagem:")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"balance":"380"}` {
		t.Fatalf("unexpected payload: %s", val)
	}
}

func TestCacheGetMissing(t *testing.T) {
	client, _ := newMiniredisClient(t)

	cache := NewCache(client)

	if _, err := cache.Get(context.Background(), "fund:carro:"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestCacheDelete(t *testing.T) {
	client, _ := newMiniredisClient(t)

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "fund:mesada:user-1", []byte("cached"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "fund:mesada:user-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "fund:mesada:user-1"); err == nil {
		t.Fatalf("expected error getting deleted key")
	}
}
