package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
)

type timetableFixture struct {
	repo      *memStationRepo
	source    *fakeSource
	board     *Board
	timetable *Timetable
}

func newTimetableFixture() *timetableFixture {
	repo := &memStationRepo{}
	source := newFakeSource()
	board := NewBoard(nil, nil)
	cache := NewResponseCache(zerolog.Nop(), newMemResponseCache(), 30*time.Minute)
	fetcher := NewScheduleFetcher(zerolog.Nop(), source, cache, board, nil)
	stations := NewStationService(zerolog.Nop(), repo)
	return &timetableFixture{
		repo:      repo,
		source:    source,
		board:     board,
		timetable: NewTimetable(zerolog.Nop(), stations, fetcher, board),
	}
}

func TestTimetable_FirstRunSeedsDefaults(t *testing.T) {
	fx := newTimetableFixture()

	fx.timetable.Start(context.Background())

	rec, err := fx.repo.Get(context.Background())
	if err != nil {
		t.Fatalf("defaults should be persisted: %v", err)
	}
	defaults := domain.DefaultSelections()
	if len(rec.Selections) != 2 || rec.Selections[0] != defaults[0] || rec.Selections[1] != defaults[1] {
		t.Fatalf("unexpected persisted selection: %+v", rec.Selections)
	}

	cards := fx.board.Cards()
	if len(cards) != 2 {
		t.Fatalf("expected two cards, got %d", len(cards))
	}
	for _, sel := range defaults {
		c, ok := fx.board.Card(sel.Key)
		if !ok {
			t.Fatalf("missing card %s", sel.Key)
		}
		want := domain.DefaultResult(sel.Key, sel.Label)
		if c.Source != domain.SourceDefault || c.LastUpdated != want.CreatedAt || c.Messages[0] != "0 mn" {
			t.Fatalf("%s: expected default content, got %+v", sel.Key, c)
		}
		if fx.source.Calls(sel.Key) != 1 {
			t.Fatalf("%s: expected one fetch, got %d", sel.Key, fx.source.Calls(sel.Key))
		}
	}
	if fx.board.Loading() {
		t.Fatalf("loading should be cleared")
	}
}

func TestTimetable_ExistingSelectionSkipsSeeding(t *testing.T) {
	fx := newTimetableFixture()
	stored := []domain.StationSelection{{Key: bastilleKey, Label: bastilleLabel}}
	_, _ = fx.repo.Replace(context.Background(), stored)
	fx.repo.replaces = 0
	fx.source.bodies[bastilleKey] = scheduleBody("2026-10-19T09:00:00+02:00", "2 mn")

	fx.timetable.Start(context.Background())

	if fx.repo.replaces != 0 {
		t.Fatalf("no seeding expected, got %d saves", fx.repo.replaces)
	}
	if fx.source.Calls(bastilleKey) != 1 || fx.source.Calls("metros/1/nation/R") != 0 {
		t.Fatalf("expected a single fetch for bastille")
	}
	sel := fx.timetable.Selections()
	if len(sel) != 1 || sel[0] != stored[0] {
		t.Fatalf("unexpected selection: %+v", sel)
	}
	c, ok := fx.board.Card(bastilleKey)
	if !ok || c.Source != domain.SourceNetwork || c.Messages[0] != "2 mn" {
		t.Fatalf("unexpected card: %+v", c)
	}
}

func TestTimetable_StoreFailureFallsBackToDefaults(t *testing.T) {
	fx := newTimetableFixture()
	fx.repo.getErr = errors.New("database is locked")

	fx.timetable.Start(context.Background())

	if len(fx.timetable.Selections()) != 2 {
		t.Fatalf("expected default selection, got %+v", fx.timetable.Selections())
	}
	if len(fx.board.Cards()) != 2 {
		t.Fatalf("expected two cards, got %d", len(fx.board.Cards()))
	}
}

func TestTimetable_AddStationSavesWholeRecord(t *testing.T) {
	fx := newTimetableFixture()
	ctx := context.Background()
	fx.timetable.Start(ctx)

	added := domain.StationSelection{Key: " metros/4/chatelet/R ", Label: "Châtelet, Direction Bagneux"}
	fx.timetable.AddStation(ctx, added)

	rec, err := fx.repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(rec.Selections) != 3 || rec.Selections[2].Key != "metros/4/chatelet/R" {
		t.Fatalf("unexpected record: %+v", rec.Selections)
	}
	if _, ok := fx.board.Card("metros/4/chatelet/R"); !ok {
		t.Fatalf("added station should have a card")
	}
}

func TestTimetable_RefreshRefetchesVisibleCards(t *testing.T) {
	fx := newTimetableFixture()
	ctx := context.Background()
	fx.timetable.Start(ctx)

	fx.timetable.Refresh(ctx)

	for _, sel := range domain.DefaultSelections() {
		if fx.source.Calls(sel.Key) != 2 {
			t.Fatalf("%s: expected two fetches, got %d", sel.Key, fx.source.Calls(sel.Key))
		}
		c, _ := fx.board.Card(sel.Key)
		if c.Revision != 2 || c.Label != sel.Label {
			t.Fatalf("%s: card should be updated in place, got %+v", sel.Key, c)
		}
	}
}
