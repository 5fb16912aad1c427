package event

import (
	"sync"
	"time"
)

// StoreChanged is published after every successful store mutation.
const StoreChanged = "store:changed"

// Change carries no payload beyond the mutation timestamp; subscribers
// re-query the store instead of receiving a diff.
type Change struct {
	At time.Time `json:"ts"`
}

type Handler func(data interface{})

// Bus is a minimal in-process pub/sub. Handlers run asynchronously so a slow
// subscriber never blocks the mutation that triggered the signal.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string]map[int]Handler)}
}

// Subscribe registers a handler and returns a cancel func that removes it.
func (b *Bus) Subscribe(topic string, handler Handler) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[topic][id] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[topic], id)
	}
}

func (b *Bus) Publish(topic string, data interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, handler := range b.handlers[topic] {
		go handler(data)
	}
}
