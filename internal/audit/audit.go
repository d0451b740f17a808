// Package audit vérifie le temps jusqu'à la première carte affichée.
package audit

import (
	"errors"
	"time"
)

const (
	ID = "card-audit"

	// MaxTimeToCard est le seuil de réussite (exclusif).
	MaxTimeToCard = 3000 * time.Millisecond
)

var ErrNoTimeToCard = errors.New("unable to find time to card metric")

// Artifacts expose la seule mesure consommée par l'audit.
type Artifacts interface {
	TimeToCard() (time.Duration, bool)
}

type Result struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	DisplayValue float64 `json:"displayValueMs"`
	Score        int     `json:"score"`
	Passed       bool    `json:"passed"`
	Description  string  `json:"description"`
}

func Run(a Artifacts) (Result, error) {
	if a == nil {
		return Result{}, ErrNoTimeToCard
	}
	d, ok := a.TimeToCard()
	if !ok {
		return Result{}, ErrNoTimeToCard
	}
	passed := d < MaxTimeToCard
	res := Result{
		ID:           ID,
		Title:        "Schedule card initialized and ready",
		DisplayValue: float64(d) / float64(time.Millisecond),
		Passed:       passed,
		Description:  "Schedule card slow to initialize",
	}
	if passed {
		res.Score = 1
		res.Description = "Schedule card initialized and ready"
	}
	return res, nil
}
