package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/road-mate/api-go/logger"
)

// Collection is an in-memory list reconciled from change events. Inserts
// are applied idempotently: an event for an id already present, whether from
// duplicate delivery or an optimistic local insert, is discarded. New items
// append in receipt order.
type Collection[T any] struct {
	mu    sync.Mutex
	items []T
	seen  map[uint]struct{}
	idOf  func(T) uint
}

func NewCollection[T any](idOf func(T) uint) *Collection[T] {
	return &Collection[T]{seen: make(map[uint]struct{}), idOf: idOf}
}

// Replace swaps the full contents, e.g. after a refetch.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T(nil), items...)
	c.seen = make(map[uint]struct{}, len(items))
	for _, it := range items {
		c.seen[c.idOf(it)] = struct{}{}
	}
}

// ApplyInsert appends item unless its id is already present. Returns true
// when the item was actually added.
func (c *Collection[T]) ApplyInsert(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(item)
	if _, ok := c.seen[id]; ok {
		return false
	}
	c.seen[id] = struct{}{}
	c.items = append(c.items, item)
	return true
}

// Items returns a copy of the current contents in order.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// BindCollection keeps col consistent with a channel. Insert events carrying
// a payload are decoded and applied in place; every other event, including
// inserts without a payload, triggers a full refetch. The extra round trip
// is accepted over diffing update/delete events at this data scale.
//
// onAppend, when non-nil, fires after each genuinely new insert; chat views
// hang their scroll-to-newest effect on it.
func BindCollection[T any](
	ctx context.Context,
	hub *Hub,
	channel string,
	col *Collection[T],
	refetch func(context.Context) ([]T, error),
	onAppend func(T),
) *Subscription {
	return hub.Subscribe(ctx, channel, func(ev Event) {
		if ev.Type == EventInsert && len(ev.Payload) > 0 {
			var item T
			if err := json.Unmarshal(ev.Payload, &item); err != nil {
				logger.Warn("realtime: decode insert payload", "channel", channel, "error", err)
				return
			}
			if col.ApplyInsert(item) && onAppend != nil {
				onAppend(item)
			}
			return
		}

		items, err := refetch(ctx)
		if err != nil {
			logger.Warn("realtime: refetch failed", "channel", channel, "error", err)
			return
		}
		col.Replace(items)
	})
}
