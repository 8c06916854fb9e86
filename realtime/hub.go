package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/road-mate/api-go/logger"
)

// Hub fans change events out to scoped channels over redis pub/sub. Within
// one channel redis delivers in publish order; nothing is guaranteed across
// channels, and delivery is at-most-once per subscriber connection, so
// consumers reconcile through Collection rather than trusting the stream.
type Hub struct {
	client *redis.Client
}

func NewHub(client *redis.Client) *Hub {
	return &Hub{client: client}
}

func (h *Hub) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

// Publish is best-effort: a failed publish is logged, never surfaced to the
// user action that triggered it. Subscribers recover on their next refetch.
func (h *Hub) Publish(ctx context.Context, channel string, ev Event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		logger.Error("realtime: marshal event", "channel", channel, "error", err)
		return
	}
	if err := h.client.Publish(ctx, channel, raw).Err(); err != nil {
		logger.Warn("realtime: publish failed", "channel", channel, "error", err)
	}
}

// Subscription is one consumer's handle on a channel. Close is unconditional
// and safe to call more than once; a leaked subscription keeps delivering to
// a stale handler, which is exactly the bug teardown exists to prevent.
type Subscription struct {
	pubsub *redis.PubSub
	once   sync.Once
	done   chan struct{}
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		_ = s.pubsub.Close()
	})
}

// Done is closed once the receive loop has exited.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Subscribe opens a channel and invokes handler for every decodable event.
// The handler runs on the subscription's own goroutine; one subscription,
// one goroutine, so a single consumer sees events in delivery order.
func (h *Hub) Subscribe(ctx context.Context, channel string, handler func(Event)) *Subscription {
	pubsub := h.client.Subscribe(ctx, channel)
	sub := &Subscription{pubsub: pubsub, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Warn("realtime: bad event payload", "channel", channel, "error", err)
				continue
			}
			handler(ev)
		}
	}()

	return sub
}
