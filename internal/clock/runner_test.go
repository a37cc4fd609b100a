package clock

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestRunner_FiresOncePerInterval(t *testing.T) {
	clk := NewMockClock(time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC))
	var count int64
	r := NewRunner(clk, time.Second, func(time.Time) {
		atomic.AddInt64(&count, 1)
	})
	r.Start()
	defer r.Stop()

	clk.Advance(time.Second)
	waitFor(t, func() bool { return atomic.LoadInt64(&count) == 1 }, "first tick not delivered")

	clk.Advance(time.Second)
	waitFor(t, func() bool { return atomic.LoadInt64(&count) == 2 }, "second tick not delivered")
}

func TestRunner_SubIntervalAdvanceDoesNotFire(t *testing.T) {
	clk := NewMockClock(time.Unix(0, 0))
	var count int64
	r := NewRunner(clk, time.Minute, func(time.Time) {
		atomic.AddInt64(&count, 1)
	})
	r.Start()
	defer r.Stop()

	clk.Advance(30 * time.Second)
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt64(&count) != 0 {
		t.Fatalf("fired %d times before the interval elapsed", count)
	}

	clk.Advance(30 * time.Second)
	waitFor(t, func() bool { return atomic.LoadInt64(&count) == 1 }, "tick not delivered at interval boundary")
}

func TestRunner_NoCallbackAfterStop(t *testing.T) {
	clk := NewMockClock(time.Unix(0, 0))
	var count int64
	r := NewRunner(clk, time.Second, func(time.Time) {
		atomic.AddInt64(&count, 1)
	})
	r.Start()

	clk.Advance(time.Second)
	waitFor(t, func() bool { return atomic.LoadInt64(&count) == 1 }, "tick not delivered")

	r.Stop()
	before := atomic.LoadInt64(&count)

	clk.Advance(5 * time.Second)
	time.Sleep(20 * time.Millisecond)
	if got := atomic.LoadInt64(&count); got != before {
		t.Fatalf("callback fired after Stop: %d -> %d", before, got)
	}
}

func TestRunner_StopIsIdempotent(t *testing.T) {
	clk := NewMockClock(time.Unix(0, 0))
	r := NewRunner(clk, time.Second, func(time.Time) {})
	r.Start()
	r.Stop()
	r.Stop() // second stop must not panic or deadlock
}

func TestRunner_StopWithoutStart(t *testing.T) {
	clk := NewMockClock(time.Unix(0, 0))
	r := NewRunner(clk, time.Second, func(time.Time) {})
	r.Stop()
}

func TestMockClock_AdvanceMovesNow(t *testing.T) {
	start := time.Date(2026, time.August, 29, 17, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)
	clk.Advance(90 * time.Minute)
	if got := clk.Now(); !got.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("Now() = %v, want %v", got, start.Add(90*time.Minute))
	}
}
