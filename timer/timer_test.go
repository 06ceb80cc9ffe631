package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerTicks(t *testing.T) {
	var ticks atomic.Int32

	tmr := New(10*time.Millisecond, func() {
		ticks.Add(1)
	})

	tmr.Start()

	time.Sleep(55 * time.Millisecond)

	tmr.Stop()

	got := ticks.Load()
	if got < 3 {
		t.Errorf("Expected at least 3 ticks, but got: %d", got)
	}

	// no ticks may arrive after Stop returns
	time.Sleep(30 * time.Millisecond)

	if after := ticks.Load(); after != got {
		t.Errorf("Expected no ticks after stopping, but got: %d more", after-got)
	}
}

func TestStopWithoutStart(t *testing.T) {
	tmr := New(10*time.Millisecond, func() {})

	// must not block or panic
	tmr.Stop()
}

func TestStopTwice(t *testing.T) {
	tmr := New(10*time.Millisecond, func() {})

	tmr.Start()
	tmr.Stop()
	tmr.Stop()
}
