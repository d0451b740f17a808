// Package memstore garde la sélection de stations en mémoire quand le stockage durable est indisponible.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

type StationsRepository struct {
	mu  sync.Mutex
	rec *domain.PersistedRecord
}

func NewStationsRepository() *StationsRepository {
	return &StationsRepository{}
}

func (r *StationsRepository) Get(ctx context.Context) (domain.PersistedRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rec == nil {
		return domain.PersistedRecord{}, ports.ErrNotFound
	}
	return cloneRecord(*r.rec), nil
}

func (r *StationsRepository) Replace(ctx context.Context, selections []domain.StationSelection) (domain.PersistedRecord, error) {
	rec := cloneRecord(domain.PersistedRecord{
		RecordKey:  domain.RecordKey,
		Selections: selections,
		UpdatedAt:  time.Now().UTC(),
	})

	r.mu.Lock()
	r.rec = &rec
	r.mu.Unlock()
	return cloneRecord(rec), nil
}

func cloneRecord(rec domain.PersistedRecord) domain.PersistedRecord {
	out := rec
	out.Selections = append([]domain.StationSelection{}, rec.Selections...)
	return out
}
