package event

import "sync"

// Bus is a minimal observer registry. The collection manager publishes on it
// after every mutation so a presentation layer can re-render without polling.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func()
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]func())}
}

// Subscribe registers a handler and returns a function that removes it.
// Handlers run synchronously on the publishing goroutine.
func (b *Bus) Subscribe(handler func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish invokes every handler registered at the start of the round.
// Fan-out iterates over a snapshot, so subscribing or unsubscribing from
// inside a handler does not affect notifications already in flight.
func (b *Bus) Publish() {
	b.mu.Lock()
	snapshot := make([]func(), 0, len(b.handlers))
	for _, h := range b.handlers {
		snapshot = append(snapshot, h)
	}
	b.mu.Unlock()

	for _, h := range snapshot {
		h()
	}
}

// Len returns the number of registered handlers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}
