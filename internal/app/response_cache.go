package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

const DefaultCacheMaxAge = 30 * time.Minute

// ResponseCache applique l'expiration par âge au-dessus d'un ports.ResponseCache.
// Les erreurs internes se dégradent en absence.
type ResponseCache struct {
	logger zerolog.Logger
	store  ports.ResponseCache
	maxAge time.Duration
	now    func() time.Time
}

func NewResponseCache(logger zerolog.Logger, store ports.ResponseCache, maxAge time.Duration) *ResponseCache {
	if maxAge <= 0 {
		maxAge = DefaultCacheMaxAge
	}
	return &ResponseCache{logger: logger, store: store, maxAge: maxAge, now: time.Now}
}

func (c *ResponseCache) MaxAge() time.Duration { return c.maxAge }

// LookupBody renvoie le corps brut s'il a au plus maxAge.
func (c *ResponseCache) LookupBody(ctx context.Context, requestKey string) (domain.CachedResponse, bool) {
	if c == nil || c.store == nil {
		return domain.CachedResponse{}, false
	}
	resp, err := c.store.Get(ctx, requestKey)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			c.logger.Warn().Err(err).Str("request", requestKey).Msg("cache lookup failed")
		}
		return domain.CachedResponse{}, false
	}
	if resp.Age(c.now()) > c.maxAge {
		return domain.CachedResponse{}, false
	}
	return resp, true
}

// Lookup renvoie le résultat décodé ; Key et Label restent à la charge de l'appelant.
func (c *ResponseCache) Lookup(ctx context.Context, requestKey string) (domain.ScheduleResult, bool) {
	resp, ok := c.LookupBody(ctx, requestKey)
	if !ok {
		return domain.ScheduleResult{}, false
	}
	createdAt, entries, err := decodeSchedulePayload(resp.Body)
	if err != nil {
		c.logger.Debug().Err(err).Str("request", requestKey).Msg("ignoring malformed cache entry")
		return domain.ScheduleResult{}, false
	}
	return domain.ScheduleResult{CreatedAt: createdAt, Entries: entries, Source: domain.SourceCache}, true
}

func (c *ResponseCache) Store(ctx context.Context, requestKey string, body []byte) {
	if c == nil || c.store == nil {
		return
	}
	err := c.store.Put(ctx, domain.CachedResponse{RequestKey: requestKey, Body: body, StoredAt: c.now().UTC()})
	if err != nil {
		c.logger.Warn().Err(err).Str("request", requestKey).Msg("cache store failed")
	}
}

// Prune supprime les entrées expirées.
func (c *ResponseCache) Prune(ctx context.Context) (int, error) {
	if c == nil || c.store == nil {
		return 0, nil
	}
	return c.store.DeleteOlderThan(ctx, c.now().Add(-c.maxAge))
}
