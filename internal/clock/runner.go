package clock

import (
	"sync"
	"time"
)

// Runner is a cancellable repeating task. Invocations never overlap: the
// callback runs on a single goroutine and each call completes before the next
// tick is consumed. Stop is idempotent and guarantees the callback will not
// fire again after it returns, even for a tick already queued.
type Runner struct {
	clock    Clock
	interval time.Duration
	fn       func(now time.Time)

	mu      sync.Mutex
	done    chan struct{}
	wg      sync.WaitGroup
	started bool
	stopped bool
}

// NewRunner creates a runner that calls fn every interval once started.
func NewRunner(c Clock, interval time.Duration, fn func(now time.Time)) *Runner {
	return &Runner{
		clock:    c,
		interval: interval,
		fn:       fn,
		done:     make(chan struct{}),
	}
}

// Start begins periodic invocation. Starting twice is a no-op.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.stopped {
		return
	}
	r.started = true

	ticker := r.clock.NewTicker(r.interval)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				return
			case now := <-ticker.C():
				// Re-check cancellation before invoking: a tick may already
				// be queued when Stop closes done.
				select {
				case <-r.done:
					return
				default:
				}
				r.fn(now)
			}
		}
	}()
}

// Stop cancels the runner and waits for any in-flight invocation to finish.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.done)
	started := r.started
	r.mu.Unlock()

	if started {
		r.wg.Wait()
	}
}
