// Package lrucache est un cache de réponses en mémoire, borné en nombre d'entrées.
package lrucache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

const defaultSize = 256

type Cache struct {
	entries *lru.Cache[string, domain.CachedResponse]
}

func New(size int) *Cache {
	if size <= 0 {
		size = defaultSize
	}
	// lru.New n'échoue que pour une taille <= 0.
	entries, _ := lru.New[string, domain.CachedResponse](size)
	return &Cache{entries: entries}
}

func (c *Cache) Get(ctx context.Context, requestKey string) (domain.CachedResponse, error) {
	resp, ok := c.entries.Get(requestKey)
	if !ok {
		return domain.CachedResponse{}, ports.ErrNotFound
	}
	resp.Body = append([]byte(nil), resp.Body...)
	return resp, nil
}

func (c *Cache) Put(ctx context.Context, resp domain.CachedResponse) error {
	resp.Body = append([]byte(nil), resp.Body...)
	c.entries.Add(resp.RequestKey, resp)
	return nil
}

func (c *Cache) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	for _, key := range c.entries.Keys() {
		resp, ok := c.entries.Peek(key)
		if ok && resp.StoredAt.Before(cutoff) {
			c.entries.Remove(key)
			removed++
		}
	}
	return removed, nil
}

func (c *Cache) Len() int {
	return c.entries.Len()
}
