package domain

import (
	"strings"
	"time"
)

// RecordKey est la clé fixe de l'unique enregistrement de sélection.
const RecordKey = 1

// StationSelection identifie une station choisie par l'utilisateur.
// Label suit le format "Titre, Sous-titre".
type StationSelection struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func (s StationSelection) Title() string {
	title, _, _ := strings.Cut(s.Label, ", ")
	return title
}

func (s StationSelection) Subtitle() string {
	_, subtitle, _ := strings.Cut(s.Label, ", ")
	return subtitle
}

// PersistedRecord est l'unique enregistrement durable : il est remplacé en entier à chaque sauvegarde.
type PersistedRecord struct {
	RecordKey  int
	Selections []StationSelection
	UpdatedAt  time.Time
}

func DefaultSelections() []StationSelection {
	return []StationSelection{
		{Key: "metros/1/bastille/A", Label: "Bastille, Direction La Défense"},
		{Key: "metros/1/nation/R", Label: "Nation, Direction Château de Vincennes"},
	}
}
