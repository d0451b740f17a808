package domain

import (
	"testing"
	"time"
)

func TestStationSelection_TitleSubtitle(t *testing.T) {
	s := StationSelection{Key: "metros/1/bastille/A", Label: "Bastille, Direction La Défense"}
	if s.Title() != "Bastille" {
		t.Fatalf("title: want %q, got %q", "Bastille", s.Title())
	}
	if s.Subtitle() != "Direction La Défense" {
		t.Fatalf("subtitle: want %q, got %q", "Direction La Défense", s.Subtitle())
	}

	bare := StationSelection{Label: "Châtelet"}
	if bare.Title() != "Châtelet" || bare.Subtitle() != "" {
		t.Fatalf("unexpected split: %q / %q", bare.Title(), bare.Subtitle())
	}
}

func TestDefaultResult_IndependentDefaults(t *testing.T) {
	bastille := DefaultResult("metros/1/bastille/A", "")
	nation := DefaultResult("metros/1/nation/R", "")

	if bastille.Label != "Bastille, Direction La Défense" {
		t.Fatalf("bastille label: got %q", bastille.Label)
	}
	if nation.Label != "Nation, Direction Château de Vincennes" {
		t.Fatalf("nation label: got %q", nation.Label)
	}
	if bastille.CreatedAt == nation.CreatedAt {
		t.Fatalf("expected distinct defaults, both created at %q", bastille.CreatedAt)
	}
	if bastille.Source != SourceDefault || len(bastille.Entries) != 3 {
		t.Fatalf("unexpected default: %+v", bastille)
	}

	// Les entrées sont copiées : modifier l'une ne touche pas l'autre.
	bastille.Entries[0].Message = "changed"
	if DefaultResult("metros/1/bastille/A", "").Entries[0].Message != "0 mn" {
		t.Fatalf("default entries were mutated")
	}
}

func TestDefaultResult_UnknownKey(t *testing.T) {
	got := DefaultResult("rers/a/auber/A", "Auber, Direction Marne-la-Vallée")
	if got.Key != "rers/a/auber/A" || got.Label != "Auber, Direction Marne-la-Vallée" {
		t.Fatalf("unexpected default: %+v", got)
	}
	if len(got.Entries) == 0 {
		t.Fatalf("expected placeholder entries")
	}
}

func TestCard_ApplyResultKeepsUntouchedSlots(t *testing.T) {
	c := &Card{}
	now := time.Now()
	c.ApplyResult(ScheduleResult{CreatedAt: "a", Entries: []ScheduleEntry{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}}}, now)
	if c.Messages != [CardSlots]string{"1", "2", "3", "4"} {
		t.Fatalf("unexpected messages: %v", c.Messages)
	}
	c.ApplyResult(ScheduleResult{CreatedAt: "b", Entries: []ScheduleEntry{{"9"}}}, now)
	if c.Messages != [CardSlots]string{"9", "2", "3", "4"} {
		t.Fatalf("unexpected messages after update: %v", c.Messages)
	}
	if c.Revision != 2 || c.LastUpdated != "b" {
		t.Fatalf("unexpected card state: %+v", c)
	}
}
