package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestObserver_ExportsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewObserver("", reg)
	if err != nil {
		t.Fatalf("NewObserver: %v", err)
	}
	o.ObserveCacheLookup(true)
	o.ObserveCacheLookup(false)
	o.ObserveLiveFetch(150*time.Millisecond, "")
	o.ObserveLiveFetch(time.Second, "http_status")
	o.ObserveFallback()
	o.ObserveTimeToCard(1200 * time.Millisecond)

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	b, _ := io.ReadAll(rr.Body)
	body := string(b)

	for _, want := range []string{
		`metro_cards_cache_lookups_total{outcome="hit"} 1`,
		`metro_cards_cache_lookups_total{outcome="miss"} 1`,
		`metro_cards_live_fetch_duration_seconds_count{code="ok"} 1`,
		`metro_cards_live_fetch_duration_seconds_count{code="http_status"} 1`,
		`metro_cards_default_fallbacks_total 1`,
		`metro_cards_time_to_first_card_seconds 1.2`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
}

func TestNewObserver_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewObserver("x", reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := NewObserver("x", reg); err != nil {
		t.Fatalf("second registration should be tolerated: %v", err)
	}
}
