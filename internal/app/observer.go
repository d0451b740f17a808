package app

import "time"

// FetchObserver reçoit la télémétrie du flux d'horaires.
type FetchObserver interface {
	ObserveCacheLookup(hit bool)
	ObserveLiveFetch(duration time.Duration, code string)
	ObserveFallback()
	ObserveTimeToCard(d time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveCacheLookup(bool)               {}
func (noopObserver) ObserveLiveFetch(time.Duration, string) {}
func (noopObserver) ObserveFallback()                       {}
func (noopObserver) ObserveTimeToCard(time.Duration)        {}

func observerOrNoop(o FetchObserver) FetchObserver {
	if o == nil {
		return noopObserver{}
	}
	return o
}
