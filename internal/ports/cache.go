package ports

import (
	"context"
	"time"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
)

type ResponseCache interface {
	// Get renvoie ErrNotFound si aucune entrée n'existe pour requestKey.
	Get(ctx context.Context, requestKey string) (domain.CachedResponse, error)
	Put(ctx context.Context, resp domain.CachedResponse) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// ScheduleSource est l'endpoint amont des horaires.
type ScheduleSource interface {
	RequestKey(key string) string
	Fetch(ctx context.Context, key string) ([]byte, error)
}
