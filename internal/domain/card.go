package domain

import "time"

// CardSlots est le nombre de messages affichés par carte.
const CardSlots = 4

type Card struct {
	ID          string
	Key         string
	Label       string
	Title       string
	Subtitle    string
	LastUpdated string
	Messages    [CardSlots]string
	Source      ResultSource
	Revision    int
	UpdatedAt   time.Time
}

// ApplyResult met à jour la carte en place. Un emplacement sans nouveau message garde son texte.
func (c *Card) ApplyResult(r ScheduleResult, now time.Time) {
	c.LastUpdated = r.CreatedAt
	for i := 0; i < CardSlots && i < len(r.Entries); i++ {
		c.Messages[i] = r.Entries[i].Message
	}
	c.Source = r.Source
	c.Revision++
	c.UpdatedAt = now
}
