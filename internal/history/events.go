package history

import "sync"

type EventType string

const (
	EventCaptured EventType = "captured"
	EventUpdated  EventType = "updated"
	EventRemoved  EventType = "removed"
	EventCleared  EventType = "cleared"
)

type Event struct {
	Type    EventType
	EntryID string
}

// broadcaster fans events out to subscribers without blocking the session;
// a subscriber that falls behind misses events.
type broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func (b *broadcaster) subscribe(buf int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]chan Event)
	}
	id := b.next
	b.next++
	ch := make(chan Event, buf)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *broadcaster) emit(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe returns a channel of change notifications and a func that
// cancels the subscription and closes the channel.
func (s *Session) Subscribe(buf int) (<-chan Event, func()) {
	return s.events.subscribe(buf)
}
