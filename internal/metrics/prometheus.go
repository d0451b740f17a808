// Package metrics exporte la télémétrie du flux d'horaires vers Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "metro_cards"

type Observer struct {
	cacheLookups *prometheus.CounterVec
	liveFetches  *prometheus.HistogramVec
	fallbacks    prometheus.Counter
	timeToCard   prometheus.Gauge
}

func NewObserver(namespace string, reg prometheus.Registerer) (*Observer, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &Observer{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Schedule cache lookups by outcome.",
		}, []string{"outcome"}),
		liveFetches: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "live_fetch_duration_seconds",
			Help:      "Latency of upstream schedule requests by result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "default_fallbacks_total",
			Help:      "Built-in default timetables served after a failed fetch without cache.",
		}),
		timeToCard: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "time_to_first_card_seconds",
			Help:      "Delay between startup and the first displayed card.",
		}),
	}
	var err error
	if o.cacheLookups, err = register(reg, o.cacheLookups); err != nil {
		return nil, err
	}
	if o.liveFetches, err = register(reg, o.liveFetches); err != nil {
		return nil, err
	}
	if o.fallbacks, err = register(reg, o.fallbacks); err != nil {
		return nil, err
	}
	if o.timeToCard, err = register(reg, o.timeToCard); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Observer) ObserveCacheLookup(hit bool) {
	if o == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	o.cacheLookups.WithLabelValues(outcome).Inc()
}

func (o *Observer) ObserveLiveFetch(duration time.Duration, code string) {
	if o == nil {
		return
	}
	if code == "" {
		code = "ok"
	}
	o.liveFetches.WithLabelValues(code).Observe(duration.Seconds())
}

func (o *Observer) ObserveFallback() {
	if o == nil {
		return
	}
	o.fallbacks.Inc()
}

func (o *Observer) ObserveTimeToCard(d time.Duration) {
	if o == nil {
		return
	}
	o.timeToCard.Set(d.Seconds())
}

// register réutilise le collecteur existant s'il est déjà enregistré.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
