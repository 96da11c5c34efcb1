// Package events is the publish/subscribe channel for storage-change
// notifications. A write to one storage key is observable by any consumer that
// subscribed to that key, which is how one open page learns that another one
// changed shared state.
package events

import (
	"sync"
	"time"
)

// subscriberBuffer is the number of undelivered changes a subscriber may
// accumulate before further changes are dropped for it.
const subscriberBuffer = 16

// Change describes a write to one storage key. NewValue is nil when the key
// was deleted, or when Withheld is set because the value must not leave the
// server.
type Change struct {
	Key      string    `json:"key"`
	NewValue *string   `json:"newValue"`
	Withheld bool      `json:"withheld,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher is the write side of the bus, used by the notifying storage adapter.
type Publisher interface {
	Publish(c Change)
}

// Bus fans changes out to subscribers. The zero value is not usable; call NewBus.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

type subscriber struct {
	keys map[string]struct{}
	ch   chan Change
}

func (s *subscriber) wants(key string) bool {
	if len(s.keys) == 0 {
		return true
	}
	_, ok := s.keys[key]
	return ok
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]*subscriber)}
}

// Subscribe registers interest in the given keys, or in every key when none
// are given. The returned cancel func unregisters the subscriber and closes the
// channel; calling it more than once is safe.
func (b *Bus) Subscribe(keys ...string) (<-chan Change, func()) {
	sub := &subscriber{
		keys: make(map[string]struct{}, len(keys)),
		ch:   make(chan Change, subscriberBuffer),
	}
	for _, k := range keys {
		sub.keys[k] = struct{}{}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Publish delivers c to every interested subscriber without blocking.
// A subscriber whose buffer is full misses the change.
func (b *Bus) Publish(c Change) {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if !sub.wants(c.Key) {
			continue
		}
		select {
		case sub.ch <- c:
		default:
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
