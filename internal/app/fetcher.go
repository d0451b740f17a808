package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

// ResultSink reçoit chaque résultat émis ; le dernier arrivé fait foi.
type ResultSink interface {
	Apply(result domain.ScheduleResult)
}

// ScheduleFetcher sert le cache puis le réseau (stale-while-revalidate).
// Aucun dédoublonnage : deux Fetch sur la même clé se concurrencent.
type ScheduleFetcher struct {
	logger   zerolog.Logger
	source   ports.ScheduleSource
	cache    *ResponseCache
	sink     ResultSink
	observer FetchObserver

	background sync.WaitGroup
}

func NewScheduleFetcher(logger zerolog.Logger, source ports.ScheduleSource, cache *ResponseCache, sink ResultSink, observer FetchObserver) *ScheduleFetcher {
	return &ScheduleFetcher{
		logger:   logger,
		source:   source,
		cache:    cache,
		sink:     sink,
		observer: observerOrNoop(observer),
	}
}

// Fetch émet zéro, un ou deux résultats pour key : le résultat du cache
// (s'il existe) puis celui du réseau, sans ordre garanti entre les deux.
// Si le réseau échoue sans résultat de cache, le résultat par défaut est émis.
// Fetch rend la main une fois les deux chemins terminés.
func (f *ScheduleFetcher) Fetch(ctx context.Context, key, label string) {
	requestKey := f.source.RequestKey(key)
	cacheHit := make(chan bool, 1)

	var g errgroup.Group
	g.Go(func() error {
		res, ok := f.cache.Lookup(ctx, requestKey)
		f.observer.ObserveCacheLookup(ok)
		if ok {
			res.Key, res.Label = key, label
			f.sink.Apply(res)
		}
		cacheHit <- ok
		return nil
	})
	g.Go(func() error {
		res, err := f.fetchLive(ctx, key, label, requestKey)
		if err == nil {
			f.sink.Apply(res)
			return nil
		}
		f.logger.Warn().Err(err).Str("station", key).Str("code", ErrorCode(err)).Msg("live schedule fetch failed")
		if <-cacheHit {
			return nil
		}
		f.observer.ObserveFallback()
		f.sink.Apply(domain.DefaultResult(key, label))
		return nil
	})
	_ = g.Wait()
}

// FetchAll lance un Fetch par station, tous en parallèle.
func (f *ScheduleFetcher) FetchAll(ctx context.Context, selections []domain.StationSelection) {
	var g errgroup.Group
	for _, sel := range selections {
		sel := sel
		g.Go(func() error {
			f.Fetch(ctx, sel.Key, sel.Label)
			return nil
		})
	}
	_ = g.Wait()
}

func (f *ScheduleFetcher) fetchLive(ctx context.Context, key, label, requestKey string) (domain.ScheduleResult, error) {
	body, err := f.fetchBody(ctx, key, requestKey)
	if err != nil {
		return domain.ScheduleResult{}, err
	}
	createdAt, entries, _ := decodeSchedulePayload(body)
	return domain.ScheduleResult{
		Key:       key,
		Label:     label,
		CreatedAt: createdAt,
		Entries:   entries,
		Source:    domain.SourceNetwork,
	}, nil
}

// fetchBody interroge l'amont, valide la réponse et la met en cache.
func (f *ScheduleFetcher) fetchBody(ctx context.Context, key, requestKey string) ([]byte, error) {
	start := time.Now()
	body, err := f.source.Fetch(ctx, key)
	if err != nil {
		coded := classifyFetchError(err)
		f.observer.ObserveLiveFetch(time.Since(start), coded.Code)
		return nil, coded
	}
	if _, _, err := decodeSchedulePayload(body); err != nil {
		f.observer.ObserveLiveFetch(time.Since(start), ErrorCode(err))
		return nil, err
	}
	f.observer.ObserveLiveFetch(time.Since(start), "")
	f.cache.Store(ctx, requestKey, body)
	return body, nil
}

// Body sert le corps brut d'un horaire pour le proxy HTTP : une entrée fraîche
// du cache est renvoyée tout de suite et revalidée en arrière-plan.
func (f *ScheduleFetcher) Body(ctx context.Context, key string) ([]byte, domain.ResultSource, error) {
	requestKey := f.source.RequestKey(key)
	if cached, ok := f.cache.LookupBody(ctx, requestKey); ok {
		f.observer.ObserveCacheLookup(true)
		f.background.Add(1)
		go func() {
			defer f.background.Done()
			if _, err := f.fetchBody(context.WithoutCancel(ctx), key, requestKey); err != nil {
				f.logger.Debug().Err(err).Str("station", key).Msg("background revalidation failed")
			}
		}()
		return cached.Body, domain.SourceCache, nil
	}
	f.observer.ObserveCacheLookup(false)
	body, err := f.fetchBody(ctx, key, requestKey)
	if err != nil {
		return nil, "", err
	}
	return body, domain.SourceNetwork, nil
}

// Wait attend la fin des revalidations en arrière-plan.
func (f *ScheduleFetcher) Wait() {
	f.background.Wait()
}
