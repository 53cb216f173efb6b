// Package realtime pushes booking changes to open availability views.
// Clients subscribe to a studio+date topic over WebSocket; when a booking
// is created or cancelled for that topic every subscriber gets an event
// and can re-fetch slots instead of submitting against a stale grid.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EventType for availability events
type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingCancelled EventType = "booking_cancelled"
)

const topicChannelPrefix = "availability:topic:"

// Event is the payload pushed to subscribers of a studio+date topic.
type Event struct {
	Type      EventType `json:"type"`
	StudioID  uuid.UUID `json:"studio_id"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot"`
	Duration  float64   `json:"duration_hours"`
	BookingID uuid.UUID `json:"booking_id"`
}

// Topic identifies one availability view.
func Topic(studioID uuid.UUID, date string) string {
	return studioID.String() + ":" + date
}

// connection is one subscribed WebSocket client.
type connection struct {
	topic string
	send  chan []byte
}

// Hub fans availability events out to subscribed connections. With Redis
// configured, events travel over Pub/Sub so every instance sees them.
type Hub struct {
	topics map[string]map[*connection]bool
	redis  *redis.Client
	pubsub *redis.PubSub

	mu sync.RWMutex

	register   chan *connection
	unregister chan *connection

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates the availability hub.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		topics:     make(map[string]map[*connection]bool),
		redis:      redisClient,
		register:   make(chan *connection),
		unregister: make(chan *connection),
		ctx:        ctx,
		cancel:     cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.PSubscribe(ctx, topicChannelPrefix+"*")
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.topics[conn.topic] == nil {
				h.topics[conn.topic] = make(map[*connection]bool)
			}
			h.topics[conn.topic][conn] = true
			h.mu.Unlock()
			log.Debug().Str("topic", conn.topic).Msg("availability watcher connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.topics[conn.topic]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.send)
				}
				if len(conns) == 0 {
					delete(h.topics, conn.topic)
				}
			}
			h.mu.Unlock()
			log.Debug().Str("topic", conn.topic).Msg("availability watcher disconnected")
		}
	}
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(msg.Channel) <= len(topicChannelPrefix) {
				continue
			}
			topic := msg.Channel[len(topicChannelPrefix):]
			h.broadcastLocal(topic, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcastLocal(topic string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.topics[topic] {
		select {
		case conn.send <- data:
		default:
			// Buffer full, drop this event; client re-fetches on next action.
			log.Warn().Str("topic", topic).Msg("availability event dropped, send buffer full")
		}
	}
}

// Broadcast pushes an event to every watcher of its studio+date topic,
// across all instances when Redis is configured.
func (h *Hub) Broadcast(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal availability event")
		return
	}

	topic := Topic(event.StudioID, event.Date)

	if h.redis != nil {
		if err := h.redis.Publish(h.ctx, topicChannelPrefix+topic, data).Err(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("redis publish failed")
			h.broadcastLocal(topic, data)
		}
		return
	}

	h.broadcastLocal(topic, data)
}

// WatcherCount returns the number of local connections on a topic.
func (h *Hub) WatcherCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Shutdown stops the hub and closes the Redis subscription.
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}
