package testutil

import "sync"

// RunID is the fixed run identifier used by tests that inspect log output.
const RunID = "test-run-default"

// Calls records named events in the order they happen.
//
// Hooks and bodies under test append to it so a test can check that setup,
// body and teardown ran, and in which order.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Calls struct {
	mu     sync.Mutex
	events []string
}

// Add appends an event.
func (c *Calls) Add(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Events returns a copy of the recorded events.
func (c *Calls) Events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	copy(out, c.events)
	return out
}

// Count returns how many times event was recorded.
func (c *Calls) Count(event string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.events {
		if e == event {
			n++
		}
	}
	return n
}

// Reset forgets all events.
func (c *Calls) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
