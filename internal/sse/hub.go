package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/duckwolf_api/internal/metrics"
	"github.com/GTDGit/duckwolf_api/internal/models"
)

// EventNotificationCreated is the SSE event name for a new notification.
const EventNotificationCreated = "notification.created"

const (
	sinkSSE          = "sse"
	subscriberBuffer = 64
)

// NotificationEvent is the data of an EventNotificationCreated event.
type NotificationEvent struct {
	Event        string              `json:"event"`
	Notification models.Notification `json:"notification"`
	Timestamp    time.Time           `json:"timestamp"`
}

// Subscriber is one open dashboard stream.
type Subscriber struct {
	ID     string
	Events <-chan []byte

	send chan []byte
}

// Hub fans notifications out to open dashboard streams. It implements
// notify.Notifier. A subscriber whose buffer is full misses the event; the
// publisher never waits.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]*Subscriber
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		subs:    make(map[string]*Subscriber),
		metrics: m,
		now:     time.Now,
	}
}

// Subscribe opens a stream for id, replacing any previous stream with the same id.
func (h *Hub) Subscribe(id string) *Subscriber {
	ch := make(chan []byte, subscriberBuffer)
	s := &Subscriber{ID: id, Events: ch, send: ch}

	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.subs[id]; ok {
		close(old.send)
	}
	h.subs[id] = s

	log.Info().Str("client_id", id).Int("subscribers", len(h.subs)).Msg("Notification stream opened")
	return s
}

// Unsubscribe closes the stream of s. Calling it twice is harmless.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.subs[s.ID]; ok && cur == s {
		close(s.send)
		delete(h.subs, s.ID)
		log.Info().Str("client_id", s.ID).Int("subscribers", len(h.subs)).Msg("Notification stream closed")
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers n to every open stream.
func (h *Hub) Publish(n models.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.subs) == 0 {
		return
	}

	data, err := json.Marshal(NotificationEvent{
		Event:        EventNotificationCreated,
		Notification: n,
		Timestamp:    h.now(),
	})
	if err != nil {
		log.Error().Err(err).Str("notification_id", n.ID).Msg("Failed to marshal notification event")
		return
	}

	for _, s := range h.subs {
		select {
		case s.send <- data:
			h.metrics.RecordNotificationPublished(sinkSSE, true)
		default:
			h.metrics.RecordNotificationPublished(sinkSSE, false)
			log.Warn().Str("client_id", s.ID).Str("notification_id", n.ID).Msg("Notification stream full, event dropped")
		}
	}
}
