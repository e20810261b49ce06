package events

import (
	"context"
	"sync"
)

// Capture is an in-memory publisher for tests: emitted events are recorded
// so assertions can inspect them directly.
type Capture struct {
	mu     sync.Mutex
	events []Event
}

func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) Emit(_ context.Context, event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

// Events returns a copy of everything emitted so far.
func (c *Capture) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Reset clears captured events between test cases.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
