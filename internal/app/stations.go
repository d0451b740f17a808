package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

type StationService struct {
	logger zerolog.Logger
	repo   ports.StationRepository
}

func NewStationService(logger zerolog.Logger, repo ports.StationRepository) *StationService {
	return &StationService{logger: logger, repo: repo}
}

// Load renvoie l'enregistrement persisté. Absent si rien n'est sauvegardé
// ou si le stockage échoue : l'appelant retombe sur la sélection par défaut.
func (s *StationService) Load(ctx context.Context) (domain.PersistedRecord, bool) {
	if s == nil || s.repo == nil {
		return domain.PersistedRecord{}, false
	}
	rec, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("station store load failed")
		}
		return domain.PersistedRecord{}, false
	}
	return rec, true
}

// Save remplace l'enregistrement entier.
func (s *StationService) Save(ctx context.Context, selections []domain.StationSelection) error {
	if s == nil || s.repo == nil {
		return ErrStorageUnavailable
	}
	rec, err := s.repo.Replace(ctx, selections)
	if err != nil {
		s.logger.Warn().Err(err).Msg("station store save failed")
		return err
	}
	s.logger.Debug().Int("stations", len(rec.Selections)).Msg("stations saved")
	return nil
}
