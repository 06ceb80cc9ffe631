// Package timer drives the once-per-second tick of an active workout
// session.
package timer

import (
	"sync"
	"time"
)

// Timer invokes a callback at a fixed wall-clock interval. It carries no
// notion of elapsed time itself; the session derives its duration from
// wall-clock deltas so that delayed or missed ticks cause no drift.
type Timer struct {
	interval time.Duration
	tick     func()
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
	started  bool
}

// New creates a timer that calls tick every interval once started.
func New(interval time.Duration, tick func()) *Timer {
	return &Timer{
		interval: interval,
		tick:     tick,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the tick loop.
func (t *Timer) Start() {
	t.started = true

	go func() {
		defer close(t.done)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				t.tick()
			}
		}
	}()
}

// Stop ends the tick loop and waits for it to finish, guaranteeing that
// no further tick fires after Stop returns. It is safe to call more than
// once.
func (t *Timer) Stop() {
	t.once.Do(func() {
		close(t.stop)
	})

	if t.started {
		<-t.done
	}
}
