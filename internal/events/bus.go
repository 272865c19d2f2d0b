package events

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Handler receives an emitted event.
type Handler func(Event)

// HandlerID identifies a registration so it can be removed with Off.
type HandlerID uint64

type subscription struct {
	id HandlerID
	fn Handler
}

// Bus is a synchronous publish/subscribe dispatcher keyed by event name.
// Handlers for one name run in registration order on the emitter's goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Name][]subscription
	nextID   HandlerID
	logger   *log.Logger
}

// NewBus creates an empty bus. A nil logger falls back to log.Default().
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{
		handlers: make(map[Name][]subscription),
		logger:   logger,
	}
}

// On registers h for name and returns an id usable with Off.
func (b *Bus) On(name Name, h Handler) HandlerID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], subscription{id: id, fn: h})
	return id
}

// Off removes the handler registered under id for name.
// Returns false if no such handler exists.
func (b *Bus) Off(name Name, id HandlerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[name]
	for i, s := range subs {
		if s.id == id {
			b.handlers[name] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// HandlerCount returns how many handlers are registered for name.
func (b *Bus) HandlerCount(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}

// Emit invokes every handler registered for ev's name before returning.
// A panicking handler is logged and does not stop the remaining handlers.
func (b *Bus) Emit(ev Event) {
	if ev == nil {
		return
	}

	// Snapshot so handlers may subscribe or emit without deadlocking.
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[ev.Name()]))
	copy(subs, b.handlers[ev.Name()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.invoke(ev, s.fn)
	}
}

func (b *Bus) invoke(ev Event, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "event", ev.Name(), "panic", r)
		}
	}()
	h(ev)
}
