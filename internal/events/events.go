// Package events provides the in-process event bus. Journal mutations are
// published here and fanned out to subscribers (the websocket stream, jobs).
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventType identifies a class of event
type EventType string

const (
	// EntrySaved - a trade day was created or overwritten
	EntrySaved EventType = "entry_saved"
	// EntryDeleted - a trade day was removed from the store
	EntryDeleted EventType = "entry_deleted"
	// ProfileUpdated - the user profile document changed
	ProfileUpdated EventType = "profile_updated"
	// BackupCompleted - a backup archive was uploaded
	BackupCompleted EventType = "backup_completed"
)

// Event is a single published event. UserID scopes fan-out: subscribers only
// receive events for their own user (system events carry an empty UserID and
// go to everyone).
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"-"`
	DateKey   string      `json:"dateKey,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Bus is a simple fan-out event bus. Subscribers receive events on buffered
// channels; a subscriber that falls behind loses events rather than blocking
// publishers.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]*subscription
	log  zerolog.Logger
}

type subscription struct {
	userID string
	ch     chan Event
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subs: make(map[string]*subscription),
		log:  log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a subscriber scoped to one user and returns the
// subscription ID and receive channel. Unsubscribe must be called with the
// returned ID when done.
func (b *Bus) Subscribe(userID string) (string, <-chan Event) {
	id := uuid.New().String()
	sub := &subscription{userID: userID, ch: make(chan Event, 16)}

	b.mu.Lock()
	b.subs[id] = sub
	b.mu.Unlock()

	return id, sub.ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}

// Publish delivers an event to all matching subscribers. The event ID and
// timestamp are filled in here.
func (b *Bus) Publish(event Event) {
	event.ID = uuid.New().String()
	event.Timestamp = time.Now()

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if event.UserID != "" && sub.userID != event.UserID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// Slow subscriber, drop rather than block the publisher
			b.log.Debug().Str("type", string(event.Type)).Msg("Dropped event for slow subscriber")
		}
	}
}

// SubscriberCount returns the number of active subscribers (for health/tests)
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
