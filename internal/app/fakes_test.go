package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

func scheduleBody(date string, messages ...string) []byte {
	out := `{"result":{"schedules":[`
	for i, m := range messages {
		if i > 0 {
			out += ","
		}
		out += `{"message":"` + m + `","destination":"La Défense"}`
	}
	return []byte(out + `]},"_metadata":{"call":"GET /schedules","date":"` + date + `","version":3}}`)
}

type memResponseCache struct {
	mu      sync.Mutex
	entries map[string]domain.CachedResponse
	getErr  error
}

func newMemResponseCache() *memResponseCache {
	return &memResponseCache{entries: map[string]domain.CachedResponse{}}
}

func (c *memResponseCache) Get(ctx context.Context, requestKey string) (domain.CachedResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return domain.CachedResponse{}, c.getErr
	}
	resp, ok := c.entries[requestKey]
	if !ok {
		return domain.CachedResponse{}, ports.ErrNotFound
	}
	return resp, nil
}

func (c *memResponseCache) Put(ctx context.Context, resp domain.CachedResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[resp.RequestKey] = resp
	return nil
}

func (c *memResponseCache) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, v := range c.entries {
		if v.StoredAt.Before(cutoff) {
			delete(c.entries, k)
			n++
		}
	}
	return n, nil
}

// fakeSource répond selon bodies/errs ; une clé absente des deux renvoie une erreur réseau.
type fakeSource struct {
	mu     sync.Mutex
	bodies map[string][]byte
	errs   map[string]error
	calls  map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{bodies: map[string][]byte{}, errs: map[string]error{}, calls: map[string]int{}}
}

func (s *fakeSource) RequestKey(key string) string {
	return "https://example.test/v3/schedules/" + key
}

func (s *fakeSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[key]++
	if err, ok := s.errs[key]; ok {
		return nil, err
	}
	if b, ok := s.bodies[key]; ok {
		return b, nil
	}
	return nil, errors.New("dial tcp: network is unreachable")
}

func (s *fakeSource) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

type recordingSink struct {
	mu      sync.Mutex
	results []domain.ScheduleResult
}

func (s *recordingSink) Apply(r domain.ScheduleResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

func (s *recordingSink) Results() []domain.ScheduleResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ScheduleResult(nil), s.results...)
}

type memStationRepo struct {
	mu       sync.Mutex
	rec      *domain.PersistedRecord
	replaces int
	getErr   error
}

func (r *memStationRepo) Get(ctx context.Context) (domain.PersistedRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return domain.PersistedRecord{}, r.getErr
	}
	if r.rec == nil {
		return domain.PersistedRecord{}, ports.ErrNotFound
	}
	out := *r.rec
	out.Selections = append([]domain.StationSelection(nil), r.rec.Selections...)
	return out, nil
}

func (r *memStationRepo) Replace(ctx context.Context, selections []domain.StationSelection) (domain.PersistedRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces++
	rec := domain.PersistedRecord{RecordKey: domain.RecordKey, Selections: append([]domain.StationSelection(nil), selections...)}
	r.rec = &rec
	return rec, nil
}

type memBus struct {
	mu     sync.Mutex
	events []ports.Event
}

func (b *memBus) Publish(topic string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ports.Event{Topic: topic, Payload: payload})
}

func (b *memBus) Subscribe() (<-chan ports.Event, func()) {
	ch := make(chan ports.Event)
	return ch, func() {}
}

func (b *memBus) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Topic)
	}
	return out
}
