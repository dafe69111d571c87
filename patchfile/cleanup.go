package patchfile

import (
	"errors"
	"os"
	"sync"
)

// DeferredCleanup collects paths SafeDelete could not remove. The binary flushes it on
// orderly shutdown.
var DeferredCleanup = &Cleanup{}

// Cleanup is a process-lifetime list of paths to delete at exit.
type Cleanup struct {
	mu    sync.Mutex
	paths []string
}

// Defer queues path for deletion. Queuing the same path twice is a no-op.
func (c *Cleanup) Defer(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.paths {
		if p == path {
			return
		}
	}
	c.paths = append(c.paths, path)
}

// Pending returns a copy of the queued paths in registration order.
func (c *Cleanup) Pending() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

// Flush tries to remove every queued path in registration order, so children queued by
// DeleteDir go before their parents, and empties the queue.
// Paths that still could not be removed are returned.
func (c *Cleanup) Flush() []string {
	c.mu.Lock()
	paths := c.paths
	c.paths = nil
	c.mu.Unlock()

	var remaining []string
	for _, p := range paths {
		err := os.Remove(p)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		diag().Warn("deferred delete failed", "path", p, "error", err)
		remaining = append(remaining, p)
	}
	return remaining
}
