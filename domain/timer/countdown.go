// Package timer implements the study-session timing core: a tick-driven
// countdown/count-up counter and the session manager composing it.
package timer

// LowTimeThreshold is the remaining-seconds boundary below which a countdown
// is presented as "low time". Presentation-only, not a state transition.
const LowTimeThreshold = 300

// Countdown tracks elapsed or remaining seconds for one session. It is
// advanced externally, one Tick per second, by whoever owns the tick source.
// Callbacks fire synchronously from Tick.
type Countdown struct {
	seconds   int
	countDown bool
	expired   bool

	onTick   func(seconds int)
	onExpire func()
}

// NewCountdown creates a timer. Negative initialSeconds is clamped to 0; a
// countdown from a negative value has no sensible semantics.
func NewCountdown(initialSeconds int, countDown bool) *Countdown {
	if initialSeconds < 0 {
		initialSeconds = 0
	}
	return &Countdown{seconds: initialSeconds, countDown: countDown}
}

// OnTick registers a callback invoked after every tick that did not expire.
func (c *Countdown) OnTick(fn func(seconds int)) {
	c.onTick = fn
}

// OnExpire registers a callback invoked exactly once when a countdown
// reaches zero.
func (c *Countdown) OnExpire(fn func()) {
	c.onExpire = fn
}

// Tick advances the timer by one second unless paused. Once expired, further
// ticks are no-ops and seconds stays clamped at 0.
func (c *Countdown) Tick(paused bool) {
	if paused || c.expired {
		return
	}
	if !c.countDown {
		c.seconds++
		if c.onTick != nil {
			c.onTick(c.seconds)
		}
		return
	}
	if c.seconds-1 <= 0 {
		c.seconds = 0
		c.expired = true
		if c.onExpire != nil {
			c.onExpire()
		}
		return
	}
	c.seconds--
	if c.onTick != nil {
		c.onTick(c.seconds)
	}
}

// Seconds returns the current remaining (countdown) or elapsed (count-up)
// seconds.
func (c *Countdown) Seconds() int {
	return c.seconds
}

// Expired reports whether a countdown has reached zero. Monotonic: it never
// resets without constructing a new timer.
func (c *Countdown) Expired() bool {
	return c.expired
}

// LowTime reports whether the timer is a countdown with under five minutes
// remaining.
func (c *Countdown) LowTime() bool {
	return c.countDown && c.seconds < LowTimeThreshold
}
