// Package event is a process-local publish/subscribe dispatcher.
package event

import (
	"sync"

	"github.com/shashiranjanraj/ameya/pkg/workerpool"
)

// Handler receives the payload the event was fired with.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}

	// asyncPool bounds FireAsync so a burst of events cannot spawn an
	// unbounded number of goroutines.
	asyncPool = workerpool.New(16)
)

// Listen registers handler for event. Handlers fire in registration order.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire runs every listener for event on the calling goroutine.
func Fire(event string, payload interface{}) {
	for _, h := range listeners(event) {
		h(payload)
	}
}

// FireAsync hands each listener to the shared pool and returns without
// waiting. A listener the pool cannot take runs synchronously instead of
// being dropped.
func FireAsync(event string, payload interface{}) {
	for _, h := range listeners(event) {
		h := h
		if err := asyncPool.Submit(func() { h(payload) }); err != nil {
			h(payload)
		}
	}
}

// Flush removes every listener. Tests use it to start clean.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

// listeners snapshots the handler slice so Fire never holds the lock
// while user code runs.
func listeners(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
