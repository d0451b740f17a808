package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

const (
	TopicCardCreated    = "card.created"
	TopicCardUpdated    = "card.updated"
	TopicLoadingCleared = "loading.cleared"
)

type CardDTO struct {
	ID          string              `json:"id"`
	Key         string              `json:"key"`
	Label       string              `json:"label"`
	Title       string              `json:"title"`
	Subtitle    string              `json:"subtitle"`
	LastUpdated string              `json:"lastUpdated"`
	Messages    []string            `json:"messages"`
	Source      domain.ResultSource `json:"source"`
	Revision    int                 `json:"revision"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func ToCardDTO(c domain.Card) CardDTO {
	return CardDTO{
		ID:          c.ID,
		Key:         c.Key,
		Label:       c.Label,
		Title:       c.Title,
		Subtitle:    c.Subtitle,
		LastUpdated: c.LastUpdated,
		Messages:    append([]string(nil), c.Messages[:]...),
		Source:      c.Source,
		Revision:    c.Revision,
		UpdatedAt:   c.UpdatedAt,
	}
}

type loadingClearedDTO struct {
	TimeToCardMs int64 `json:"timeToCardMs"`
}

// Board est l'état de l'application côté affichage : une carte par station,
// l'indicateur de chargement et le temps jusqu'à la première carte.
// Apply est le seul point de mutation.
type Board struct {
	bus      ports.EventBus
	observer FetchObserver
	now      func() time.Time

	mu         sync.Mutex
	startedAt  time.Time
	cards      map[string]*domain.Card
	order      []string
	loading    bool
	timeToCard time.Duration
}

func NewBoard(bus ports.EventBus, observer FetchObserver) *Board {
	b := &Board{
		bus:      bus,
		observer: observerOrNoop(observer),
		now:      time.Now,
		cards:    make(map[string]*domain.Card),
		loading:  true,
	}
	b.startedAt = b.now()
	return b
}

// Apply crée la carte à la première apparition de la clé, sinon la met à jour en place.
func (b *Board) Apply(result domain.ScheduleResult) {
	b.mu.Lock()
	now := b.now()
	card, exists := b.cards[result.Key]
	if !exists {
		sel := domain.StationSelection{Key: result.Key, Label: result.Label}
		card = &domain.Card{
			ID:       xid.New().String(),
			Key:      result.Key,
			Label:    result.Label,
			Title:    sel.Title(),
			Subtitle: sel.Subtitle(),
		}
		b.cards[result.Key] = card
		b.order = append(b.order, result.Key)
	}
	card.ApplyResult(result, now)
	snapshot := *card

	cleared := false
	if b.loading {
		b.loading = false
		b.timeToCard = now.Sub(b.startedAt)
		cleared = true
	}
	ttc := b.timeToCard
	b.mu.Unlock()

	topic := TopicCardUpdated
	if !exists {
		topic = TopicCardCreated
	}
	b.publish(topic, ToCardDTO(snapshot))
	if cleared {
		b.observer.ObserveTimeToCard(ttc)
		b.publish(TopicLoadingCleared, loadingClearedDTO{TimeToCardMs: ttc.Milliseconds()})
	}
}

func (b *Board) Cards() []domain.Card {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Card, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, *b.cards[key])
	}
	return out
}

func (b *Board) Card(key string) (domain.Card, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cards[key]
	if !ok {
		return domain.Card{}, false
	}
	return *c, true
}

func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// TimeToCard renvoie le délai entre la création du board et la première carte.
func (b *Board) TimeToCard() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loading {
		return 0, false
	}
	return b.timeToCard, true
}

func (b *Board) publish(topic string, v any) {
	if b.bus == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	b.bus.Publish(topic, payload)
}
