package recommendation

import (
	"sync"
	"time"
)

// EventType classifies cache lifecycle notifications.
type EventType string

const (
	// EventEntryRemoved is published when a cache entry is invalidated.
	EventEntryRemoved EventType = "entry_removed"

	// EventEntryUpdated is published when a refetch wrote a fresh entry.
	EventEntryUpdated EventType = "entry_updated"

	// EventEntryFailed is published when a background refetch failed and
	// the entry stays absent.
	EventEntryFailed EventType = "entry_failed"
)

// Event is a cache lifecycle notification for one preset.
type Event struct {
	Type     EventType
	PresetID int64
	At       time.Time
}

// subscriberBuffer is the channel depth per subscriber. Publishes to a
// full subscriber are dropped rather than blocking the publisher.
const subscriberBuffer = 16

// Broadcaster fans events out to subscribers. Any interested view or
// worker subscribes; publishing never blocks.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
}

// NewBroadcaster creates a new event broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber and returns its channel along
// with a cancel function that unsubscribes and closes the channel.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber. Slow subscribers with
// a full buffer miss the event.
func (b *Broadcaster) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
