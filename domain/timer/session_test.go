package timer

import "testing"

func TestSession_TimedLifecycle(t *testing.T) {
	s := NewSession(ModeTimed, 5)
	expired := 0
	s.OnExpire(func() { expired++ })

	for i := 0; i < 3; i++ {
		s.Tick()
	}
	if s.Remaining() != 2 || s.Elapsed() != 3 || s.Expired() {
		t.Fatalf("after 3 ticks: remaining=%d elapsed=%d expired=%v, want 2/3/false",
			s.Remaining(), s.Elapsed(), s.Expired())
	}

	s.Tick()
	s.Tick()
	if s.Remaining() != 0 || s.Elapsed() != 5 || !s.Expired() {
		t.Fatalf("after 5 ticks: remaining=%d elapsed=%d expired=%v, want 0/5/true",
			s.Remaining(), s.Elapsed(), s.Expired())
	}

	// A tick past expiration changes nothing.
	s.Tick()
	if s.Remaining() != 0 || s.Elapsed() != 5 || !s.Expired() {
		t.Fatalf("after 6th tick: remaining=%d elapsed=%d expired=%v, want unchanged 0/5/true",
			s.Remaining(), s.Elapsed(), s.Expired())
	}
	if expired != 1 {
		t.Fatalf("expire callback fired %d times, want 1", expired)
	}
}

func TestSession_TutorModeNeverExpires(t *testing.T) {
	s := NewSession(ModeTutor, 0)
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	if s.Elapsed() != 100 {
		t.Errorf("elapsed = %d, want 100", s.Elapsed())
	}
	if s.Expired() {
		t.Error("tutor session must not expire")
	}
	if s.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0 in tutor mode", s.Remaining())
	}
}

func TestSession_PauseAffectsBothAxes(t *testing.T) {
	s := NewSession(ModeTimed, 10)

	s.Tick()
	s.Pause()
	s.Tick()
	s.Tick()
	s.Resume()
	s.Tick()

	if s.Elapsed() != 2 {
		t.Errorf("elapsed = %d, want 2", s.Elapsed())
	}
	if s.Remaining() != 8 {
		t.Errorf("remaining = %d, want 8", s.Remaining())
	}
}

func TestSession_Toggle(t *testing.T) {
	s := NewSession(ModeTutor, 0)
	if s.Paused() {
		t.Fatal("new session must start unpaused")
	}
	s.Toggle()
	if !s.Paused() {
		t.Fatal("toggle should pause")
	}
	s.Toggle()
	if s.Paused() {
		t.Fatal("second toggle should resume")
	}
}

func TestValidMode(t *testing.T) {
	if !ValidMode(ModeTutor) || !ValidMode(ModeTimed) {
		t.Error("tutor and timed must be valid modes")
	}
	if ValidMode(Mode("marathon")) {
		t.Error("unknown mode accepted")
	}
}
