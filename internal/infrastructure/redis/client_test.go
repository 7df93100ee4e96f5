package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClientRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx := context.Background()
	client, err := NewClient(ctx, "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("expected connected client: %v", err)
	}
	defer client.Close()

	if err := client.Set(ctx, "probe", "1", 0).Err(); err != nil {
		t.Fatalf("write after connect failed: %v", err)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := NewClient(context.Background(), "://bad-url"); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}

func TestNewClientFailsFastWhenDown(t *testing.T) {
	mr := miniredis.RunT(t)
	url := "redis://" + mr.Addr()
	mr.Close()

	if _, err := NewClient(context.Background(), url); err == nil {
		t.Fatal("expected ping failure against a closed server")
	}
}
