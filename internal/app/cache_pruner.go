package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CachePruner supprime périodiquement les réponses expirées.
type CachePruner struct {
	logger zerolog.Logger
	cache  *ResponseCache

	TickInterval time.Duration
}

func NewCachePruner(logger zerolog.Logger, cache *ResponseCache, interval time.Duration) *CachePruner {
	return &CachePruner{logger: logger, cache: cache, TickInterval: interval}
}

func (p *CachePruner) Run(ctx context.Context) {
	interval := p.TickInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("cache pruner stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *CachePruner) tick(ctx context.Context) {
	n, err := p.cache.Prune(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("cache prune failed")
		return
	}
	if n > 0 {
		p.logger.Debug().Int("removed", n).Msg("expired responses pruned")
	}
}
