package parallel

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Hook intercepts the dispatch of a chunk task.
// Invoke must call body exactly once; it may run code before and after.
type Hook interface {
	Invoke(body func())
}

// HookFunc adapts a function to the Hook interface
type HookFunc func(body func())

// Invoke implements Hook
func (f HookFunc) Invoke(body func()) {
	f(body)
}

// identity runs the body directly
var identity = HookFunc(func(body func()) { body() })

// Counter is a Hook that counts dispatched chunk tasks
type Counter struct {
	n atomic.Int64
}

// Invoke implements Hook
func (c *Counter) Invoke(body func()) {
	c.n.Add(1)
	body()
}

// Count returns the number of dispatches seen
func (c *Counter) Count() int {
	return int(c.n.Load())
}

// Reset sets the count back to zero
func (c *Counter) Reset() {
	c.n.Store(0)
}

// Chain composes hooks; the first hook is outermost
func Chain(hooks ...Hook) Hook {
	filtered := make([]Hook, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			filtered = append(filtered, h)
		}
	}

	switch len(filtered) {
	case 0:
		return identity
	case 1:
		return filtered[0]
	}

	return HookFunc(func(body func()) {
		wrapped := body
		for i := len(filtered) - 1; i >= 0; i-- {
			h, inner := filtered[i], wrapped
			wrapped = func() { h.Invoke(inner) }
		}
		wrapped()
	})
}

// LogHook logs the start and duration of each chunk task at debug level
func LogHook(logger *slog.Logger) Hook {
	if logger == nil {
		logger = slog.Default()
	}

	var seq atomic.Int64
	return HookFunc(func(body func()) {
		id := seq.Add(1)
		start := time.Now()
		logger.Debug("chunk task dispatched", "dispatch", id)
		body()
		logger.Debug("chunk task finished", "dispatch", id, "duration", time.Since(start))
	})
}
