package source

import (
	"sync"
	"time"
)

// DefaultQuietWindow is the default debounce window for coalesced
// regeneration.
const DefaultQuietWindow = 300 * time.Millisecond

// Coalescer collapses bursts of triggers into single callbacks. Each Trigger
// restarts a quiet-window timer; the callback fires once the window elapses
// without another trigger. Generations superseded by a newer trigger are
// simply never started, which is how stale in-flight results are avoided:
// the engine has no cancellation hook, so the calling layer ignores outdated
// work by not scheduling it.
type Coalescer struct {
	window time.Duration
	fn     func()

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewCoalescer creates a coalescer calling fn after each quiet window.
// A non-positive window uses DefaultQuietWindow.
func NewCoalescer(window time.Duration, fn func()) *Coalescer {
	if window <= 0 {
		window = DefaultQuietWindow
	}
	return &Coalescer{window: window, fn: fn}
}

// Trigger requests a callback. Rapid triggers collapse into one.
func (c *Coalescer) Trigger() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, c.fn)
}

// Close stops any pending callback. The coalescer ignores triggers after
// Close.
func (c *Coalescer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
