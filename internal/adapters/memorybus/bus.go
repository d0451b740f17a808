package memorybus

import (
	"sync"

	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

const defaultBuffer = 64

// Bus diffuse les événements de cartes aux abonnés (flux SSE).
// Un abonné trop lent perd des événements plutôt que de bloquer Publish.
type Bus struct {
	mu     sync.Mutex
	subs   map[chan ports.Event]struct{}
	alive  bool
	buffer int
}

func New() *Bus {
	return NewWithBuffer(defaultBuffer)
}

func NewWithBuffer(buffer int) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{subs: make(map[chan ports.Event]struct{}), alive: true, buffer: buffer}
}

func (b *Bus) Publish(topic string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive {
		return
	}
	evt := ports.Event{Topic: topic, Payload: payload}
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (b *Bus) Subscribe() (<-chan ports.Event, func()) {
	ch := make(chan ports.Event, b.buffer)
	b.mu.Lock()
	if !b.alive {
		close(ch)
		b.mu.Unlock()
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}

	return ch, cancel
}

// Close ferme tous les abonnements ; les Publish suivants sont ignorés.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.alive {
		return
	}
	b.alive = false
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
