package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
)

func TestCachePruner_RemovesExpiredUntilStopped(t *testing.T) {
	store := newMemResponseCache()
	_ = store.Put(context.Background(), domain.CachedResponse{RequestKey: "old", StoredAt: time.Now().Add(-time.Hour)})
	cache := NewResponseCache(zerolog.Nop(), store, 30*time.Minute)

	p := NewCachePruner(zerolog.Nop(), cache, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for {
		if _, err := store.Get(context.Background(), "old"); err != nil {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("expired entry was not pruned")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("pruner did not stop")
	}
}
