package timer

// Mode selects how a study session is timed.
type Mode string

const (
	// ModeTutor has no enforced deadline; only elapsed time is meaningful.
	ModeTutor Mode = "tutor"
	// ModeTimed tracks elapsed and remaining time together from one tick.
	ModeTimed Mode = "timed"
)

// ValidMode reports whether m is a known session mode.
func ValidMode(m Mode) bool {
	return m == ModeTutor || m == ModeTimed
}

// Session composes elapsed and remaining axes over one shared tick. In timed
// mode expiry is terminal: once remaining hits zero both axes halt. A session
// cannot be reconfigured; a new run needs a new Session.
type Session struct {
	mode     Mode
	elapsed  *Countdown
	remain   *Countdown
	paused   bool
	onExpire func()
}

// NewSession creates a session. initialSeconds is only meaningful in timed
// mode and is clamped at 0.
func NewSession(mode Mode, initialSeconds int) *Session {
	s := &Session{
		mode:    mode,
		elapsed: NewCountdown(0, false),
	}
	if mode == ModeTimed {
		s.remain = NewCountdown(initialSeconds, true)
	}
	return s
}

// OnExpire registers a callback fired once when the timed deadline passes.
func (s *Session) OnExpire(fn func()) {
	s.onExpire = fn
	if s.remain != nil {
		s.remain.OnExpire(fn)
	}
}

// Tick advances both axes by one second. Pause takes effect on the tick
// boundary: a paused tick advances nothing.
func (s *Session) Tick() {
	if s.paused || s.Expired() {
		return
	}
	s.elapsed.Tick(false)
	if s.remain != nil {
		s.remain.Tick(false)
	}
}

// Pause suspends both axes from the next tick on.
func (s *Session) Pause() { s.paused = true }

// Resume continues both axes from the next tick on.
func (s *Session) Resume() { s.paused = false }

// Toggle flips the paused state.
func (s *Session) Toggle() { s.paused = !s.paused }

// Paused reports whether ticks are currently suspended.
func (s *Session) Paused() bool { return s.paused }

// Mode returns the session timing mode.
func (s *Session) Mode() Mode { return s.mode }

// Elapsed returns seconds counted while unpaused.
func (s *Session) Elapsed() int { return s.elapsed.Seconds() }

// Remaining returns the countdown value in timed mode, 0 in tutor mode.
func (s *Session) Remaining() int {
	if s.remain == nil {
		return 0
	}
	return s.remain.Seconds()
}

// Expired reports whether a timed session's deadline has passed.
func (s *Session) Expired() bool {
	return s.remain != nil && s.remain.Expired()
}

// LowTime reports whether a timed session has under five minutes left.
func (s *Session) LowTime() bool {
	return s.remain != nil && s.remain.LowTime()
}
