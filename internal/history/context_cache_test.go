package history

import (
	"testing"
	"time"

	"docagent/internal/models"
)

func TestContextCacheSetGet(t *testing.T) {
	cc := NewContextCache(time.Minute)

	ctx := &models.RequestContext{RequestID: "req-1", Style: "google"}
	cc.Set("req-1", ctx)

	got, ok := cc.Get("req-1")
	if !ok {
		t.Fatal("expected context to be present")
	}
	if got.Style != "google" {
		t.Fatalf("unexpected style: %s", got.Style)
	}

	if cc.Size() != 1 {
		t.Fatalf("expected size 1, got %d", cc.Size())
	}

	cc.Delete("req-1")
	if _, ok := cc.Get("req-1"); ok {
		t.Fatal("expected context to be deleted")
	}
}

func TestContextCacheExpiry(t *testing.T) {
	cc := NewContextCache(10 * time.Millisecond)

	cc.Set("req-1", &models.RequestContext{RequestID: "req-1"})
	time.Sleep(20 * time.Millisecond)

	if _, ok := cc.Get("req-1"); ok {
		t.Fatal("expected context to be expired")
	}

	// expired entries are removed by cleanup, not Get
	cc.cleanup()
	if cc.Size() != 0 {
		t.Fatalf("expected cleanup to remove expired entries, size=%d", cc.Size())
	}
}

func TestContextCacheMiss(t *testing.T) {
	cc := NewContextCache(time.Minute)

	if _, ok := cc.Get("missing"); ok {
		t.Fatal("expected miss for unknown request id")
	}
}
