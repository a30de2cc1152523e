package form

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	domproduct "example.com/finproducts-admin/internal/domain/product"
)

// uniquenessChecker runs the debounced remote id check. Every schedule
// bumps the epoch; a fired timer and an in-flight gateway call both
// re-check the epoch under the lock before touching the form, so only the
// result for the field's current value is ever applied.
type uniquenessChecker struct {
	mu      *sync.Mutex
	gateway domproduct.Gateway
	window  time.Duration
	logger  *slog.Logger

	epoch uint64
	timer *time.Timer

	// both callbacks run with mu held
	setPending func(bool)
	apply      func(exists bool)
}

func (c *uniquenessChecker) schedule(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	// Short input never reaches the gateway.
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 3 {
		c.setPending(false)
		c.apply(false)
		return
	}

	epoch := c.epoch
	c.setPending(true)
	c.timer = time.AfterFunc(c.window, func() {
		c.run(epoch, trimmed)
	})
}

func (c *uniquenessChecker) run(epoch uint64, id string) {
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	gw := c.gateway
	c.mu.Unlock()

	var exists bool
	if gw != nil {
		var err error
		exists, err = gw.ExistsByID(context.Background(), id)
		if err != nil {
			// Fail open: a broken check must not block submission.
			c.logger.Error("id verification failed", "id", id, "error", err)
			exists = false
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		// Superseded while the request was in flight.
		return
	}
	c.apply(exists)
}

// cancel invalidates the pending timer and any in-flight check.
func (c *uniquenessChecker) cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.setPending(false)
}
