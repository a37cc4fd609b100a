package app

import (
	"context"
	"testing"
	"time"

	"studyplan/domain/core"
	"studyplan/internal/clock"
	"studyplan/ports"
)

type recordingNotifier struct {
	permission ports.Permission
	sent       chan ports.Notification
}

func newRecordingNotifier(p ports.Permission) *recordingNotifier {
	return &recordingNotifier{permission: p, sent: make(chan ports.Notification, 16)}
}

func (n *recordingNotifier) Permission(ctx context.Context) ports.Permission { return n.permission }

func (n *recordingNotifier) Send(ctx context.Context, note ports.Notification) error {
	n.sent <- note
	return nil
}

func goalNotMet(ctx context.Context) (bool, error) { return false, nil }
func goalMet(ctx context.Context) (bool, error)    { return true, nil }

func expectNotification(t *testing.T, n *recordingNotifier) ports.Notification {
	t.Helper()
	select {
	case note := <-n.sent:
		return note
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reminder, none arrived")
		return ports.Notification{}
	}
}

func expectNoNotification(t *testing.T, n *recordingNotifier) {
	t.Helper()
	select {
	case note := <-n.sent:
		t.Fatalf("unexpected reminder: %+v", note)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReminderService_RejectsInvalidHour(t *testing.T) {
	clk := clock.NewMockClock(time.Unix(0, 0))
	for _, hour := range []int{-1, 24, 99} {
		_, err := NewReminderService(clk, newRecordingNotifier(ports.PermissionGranted), goalNotMet, hour, nil)
		if err != core.ErrInvalidReminderHour {
			t.Errorf("hour %d: err = %v, want ErrInvalidReminderHour", hour, err)
		}
	}
}

func TestReminderService_CatchUpWhenStartedPastReminderHour(t *testing.T) {
	// Started at 19:00 with an 18:00 reminder hour: exactly one immediate
	// attempt, nothing more until the clock reaches 18:00 again.
	clk := clock.NewMockClock(time.Date(2026, time.August, 29, 19, 0, 0, 0, time.UTC))
	notifier := newRecordingNotifier(ports.PermissionGranted)

	svc, err := NewReminderService(clk, notifier, goalNotMet, 18, nil)
	if err != nil {
		t.Fatalf("NewReminderService: %v", err)
	}
	svc.Start(context.Background())
	defer svc.Stop()

	note := expectNotification(t, notifier)
	if note.Tag != ReminderTag {
		t.Errorf("tag = %q, want %q", note.Tag, ReminderTag)
	}
	expectNoNotification(t, notifier)
}

func TestReminderService_NoCatchUpBeforeReminderHour(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC))
	notifier := newRecordingNotifier(ports.PermissionGranted)

	svc, err := NewReminderService(clk, notifier, goalNotMet, 18, nil)
	if err != nil {
		t.Fatalf("NewReminderService: %v", err)
	}
	svc.Start(context.Background())
	defer svc.Stop()

	expectNoNotification(t, notifier)

	// Step hour by hour. 11:00 through 17:00 stay silent.
	for i := 0; i < 7; i++ {
		clk.Advance(time.Hour)
		expectNoNotification(t, notifier)
	}

	// 18:00 fires.
	clk.Advance(time.Hour)
	expectNotification(t, notifier)

	// 19:00 does not: periodic polls act only on the exact hour.
	clk.Advance(time.Hour)
	expectNoNotification(t, notifier)
}

func TestReminderService_GoalMetSkipsReminder(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, time.August, 29, 18, 0, 0, 0, time.UTC))
	notifier := newRecordingNotifier(ports.PermissionGranted)

	svc, err := NewReminderService(clk, notifier, goalMet, 18, nil)
	if err != nil {
		t.Fatalf("NewReminderService: %v", err)
	}
	svc.Start(context.Background())
	defer svc.Stop()

	expectNoNotification(t, notifier)
}

func TestReminderService_PermissionNotGrantedIsSilent(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, time.August, 29, 18, 0, 0, 0, time.UTC))
	notifier := newRecordingNotifier(ports.PermissionDefault)

	svc, err := NewReminderService(clk, notifier, goalNotMet, 18, nil)
	if err != nil {
		t.Fatalf("NewReminderService: %v", err)
	}
	svc.Start(context.Background())
	defer svc.Stop()

	expectNoNotification(t, notifier)
}

func TestReminderService_StopHaltsPolling(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, time.August, 29, 17, 0, 0, 0, time.UTC))
	notifier := newRecordingNotifier(ports.PermissionGranted)

	svc, err := NewReminderService(clk, notifier, goalNotMet, 18, nil)
	if err != nil {
		t.Fatalf("NewReminderService: %v", err)
	}
	svc.Start(context.Background())
	svc.Stop()

	clk.Advance(time.Hour)
	expectNoNotification(t, notifier)
}
