package middleware

import (
	"sync"
	"time"
)

// janitor runs sweep on a ticker in its own goroutine until Stop is called.
// RateLimiter and IdempotencyStore embed one to expire their in-memory state.
type janitor struct {
	halt chan struct{}
	once sync.Once
}

func startJanitor(every time.Duration, sweep func()) *janitor {
	j := &janitor{halt: make(chan struct{})}

	go func() {
		tick := time.NewTicker(every)
		defer tick.Stop()

		for {
			select {
			case <-j.halt:
				return
			case <-tick.C:
				sweep()
			}
		}
	}()

	return j
}

// Stop ends the sweep goroutine. Calling it again is a no-op.
func (j *janitor) Stop() {
	j.once.Do(func() { close(j.halt) })
}
