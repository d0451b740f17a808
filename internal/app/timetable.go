package app

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
)

type scheduleFetcher interface {
	Fetch(ctx context.Context, key, label string)
	FetchAll(ctx context.Context, selections []domain.StationSelection)
}

// Timetable orchestre la sélection de stations : chargement ou amorçage au
// démarrage, ajout d'une station, rafraîchissement des cartes.
type Timetable struct {
	logger   zerolog.Logger
	stations *StationService
	fetcher  scheduleFetcher
	board    *Board

	mu       sync.Mutex
	selected []domain.StationSelection
}

func NewTimetable(logger zerolog.Logger, stations *StationService, fetcher scheduleFetcher, board *Board) *Timetable {
	return &Timetable{logger: logger, stations: stations, fetcher: fetcher, board: board}
}

// Start charge la sélection persistée. Sans sélection, les stations par défaut
// sont amorcées et sauvegardées. Chaque station est ensuite récupérée.
func (t *Timetable) Start(ctx context.Context) {
	rec, ok := t.stations.Load(ctx)
	selections := rec.Selections
	if !ok {
		selections = domain.DefaultSelections()
		t.logger.Info().Int("stations", len(selections)).Msg("no saved stations, seeding defaults")
		if err := t.stations.Save(ctx, selections); err != nil {
			t.logger.Warn().Err(err).Msg("keeping default stations in memory only")
		}
	}

	t.mu.Lock()
	t.selected = append([]domain.StationSelection(nil), selections...)
	t.mu.Unlock()

	t.fetcher.FetchAll(ctx, selections)
}

// AddStation ajoute la station à la sélection, sauvegarde l'enregistrement entier
// puis récupère l'horaire. Un échec de sauvegarde n'empêche pas l'affichage.
func (t *Timetable) AddStation(ctx context.Context, sel domain.StationSelection) []domain.StationSelection {
	sel.Key = strings.TrimSpace(sel.Key)
	sel.Label = strings.TrimSpace(sel.Label)

	t.mu.Lock()
	t.selected = append(t.selected, sel)
	snapshot := append([]domain.StationSelection(nil), t.selected...)
	t.mu.Unlock()

	if err := t.stations.Save(ctx, snapshot); err != nil {
		t.logger.Warn().Err(err).Str("station", sel.Key).Msg("station added in memory only")
	}
	t.fetcher.Fetch(ctx, sel.Key, sel.Label)
	return snapshot
}

// Refresh relance la récupération de chaque carte visible.
func (t *Timetable) Refresh(ctx context.Context) {
	cards := t.board.Cards()
	selections := make([]domain.StationSelection, 0, len(cards))
	for _, c := range cards {
		selections = append(selections, domain.StationSelection{Key: c.Key, Label: c.Label})
	}
	t.fetcher.FetchAll(ctx, selections)
}

func (t *Timetable) Selections() []domain.StationSelection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.StationSelection{}, t.selected...)
}
