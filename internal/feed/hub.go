package feed

import (
	"sync"

	"github.com/google/uuid"

	"github.com/efreitasn/stocksim/internal/domain"
)

// Hub fans price snapshots out to subscribers. Delivery is best-effort:
// a subscriber whose channel is full is skipped for that tick, so a slow
// or stalled observer never blocks the tick loop or other subscribers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]chan []domain.Quote
	buffer int
}

// NewHub creates a Hub whose subscriber channels hold up to buffer
// snapshots.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[string]chan []domain.Quote),
		buffer: buffer,
	}
}

// Subscribe registers a new observer and returns its id and receive
// channel. The channel is closed by Unsubscribe.
func (h *Hub) Subscribe() (string, <-chan []domain.Quote) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan []domain.Quote, h.buffer)
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe removes the observer and closes its channel. Safe to call
// with an unknown id.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(ch)
}

// Broadcast delivers the snapshot to every subscriber without blocking.
// Subscribers with a full channel miss this snapshot.
func (h *Hub) Broadcast(snapshot []domain.Quote) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			// Subscriber is lagging; drop rather than block the tick.
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
