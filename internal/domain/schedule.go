package domain

import "time"

type ResultSource string

const (
	SourceCache   ResultSource = "cache"
	SourceNetwork ResultSource = "network"
	SourceDefault ResultSource = "default"
)

type ScheduleEntry struct {
	Message string
}

// ScheduleResult est un résultat prêt à afficher pour une station.
// CreatedAt garde l'horodatage amont tel quel.
type ScheduleResult struct {
	Key       string
	Label     string
	CreatedAt string
	Entries   []ScheduleEntry
	Source    ResultSource
}

// CachedResponse est une réponse amont brute conservée par le cache.
type CachedResponse struct {
	RequestKey string
	Body       []byte
	StoredAt   time.Time
}

func (c CachedResponse) Age(now time.Time) time.Duration {
	return now.Sub(c.StoredAt)
}

var placeholderEntries = []ScheduleEntry{
	{Message: "0 mn"},
	{Message: "2 mn"},
	{Message: "5 mn"},
}

var builtinTimetables = map[string]ScheduleResult{
	"metros/1/bastille/A": {
		Key:       "metros/1/bastille/A",
		Label:     "Bastille, Direction La Défense",
		CreatedAt: "2017-07-18T17:08:42+02:00",
	},
	"metros/1/nation/R": {
		Key:       "metros/1/nation/R",
		Label:     "Nation, Direction Château de Vincennes",
		CreatedAt: "2020-08-20T17:08:42+02:00",
	},
}

// DefaultResult renvoie l'horaire intégré pour key. Une clé inconnue reçoit
// un horaire synthétique avec son propre libellé.
func DefaultResult(key, label string) ScheduleResult {
	out, ok := builtinTimetables[key]
	if !ok {
		out = ScheduleResult{Key: key, Label: label, CreatedAt: builtinTimetables["metros/1/nation/R"].CreatedAt}
	}
	if out.Label == "" {
		out.Label = label
	}
	out.Entries = append([]ScheduleEntry(nil), placeholderEntries...)
	out.Source = SourceDefault
	return out
}
