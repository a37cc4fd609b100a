package app

import (
	"context"
	"errors"
	"time"

	"studyplan/domain/core"
	"studyplan/internal"
	"studyplan/internal/clock"
	"studyplan/ports"
)

// ReminderTag is the fixed dedup identifier on every reminder, so the
// delivery channel coalesces repeats instead of stacking them.
const ReminderTag = "daily-study-reminder"

// GoalChecker reports whether today's study goals are already met.
type GoalChecker func(ctx context.Context) (bool, error)

// ReminderService polls the wall clock once an hour and nudges the user at
// the configured hour when the daily goal is still unmet. It keeps no
// "already notified today" flag: landing on the same hour across restarts can
// re-notify, and the notification tag coalesces those at the channel level.
type ReminderService struct {
	clk       clock.Clock
	notifier  ports.Notifier
	goalCheck GoalChecker
	hour      int
	log       *internal.Logger

	runner *clock.Runner
}

// NewReminderService creates a reminder service for the given local hour.
func NewReminderService(clk clock.Clock, notifier ports.Notifier, goalCheck GoalChecker, hour int, log *internal.Logger) (*ReminderService, error) {
	if hour < 0 || hour > 23 {
		return nil, core.ErrInvalidReminderHour
	}
	if log == nil {
		log = internal.DefaultLogger
	}
	return &ReminderService{
		clk:       clk,
		notifier:  notifier,
		goalCheck: goalCheck,
		hour:      hour,
		log:       log,
	}, nil
}

// Start begins the hourly poll. If the current hour is already at or past the
// reminder hour, one immediate check runs as catch-up so opening the app late
// in the day does not miss the reminder.
func (s *ReminderService) Start(ctx context.Context) {
	now := s.clk.Now()
	if now.Hour() >= s.hour {
		s.check(ctx, now, true)
	}

	s.runner = clock.NewRunner(s.clk, time.Hour, func(now time.Time) {
		s.check(ctx, now, false)
	})
	s.runner.Start()
	s.log.Info("reminder scheduler started, hour=%d", s.hour)
}

// Stop cancels the poll loop. No check fires after Stop returns.
func (s *ReminderService) Stop() {
	if s.runner != nil {
		s.runner.Stop()
	}
}

// check runs one reminder evaluation. Periodic polls only act when the local
// hour matches exactly; the catch-up check on start acts for any hour at or
// past the reminder hour.
func (s *ReminderService) check(ctx context.Context, now time.Time, catchUp bool) {
	if catchUp {
		if now.Hour() < s.hour {
			return
		}
	} else if now.Hour() != s.hour {
		return
	}

	met, err := s.goalCheck(ctx)
	if err != nil {
		s.log.Warn("goal check failed: %v", err)
		return
	}
	if met {
		s.log.Debug("daily goal already met, no reminder")
		return
	}

	if s.notifier.Permission(ctx) != ports.PermissionGranted {
		// Not an error: an undecided or denied channel is a silent no-op.
		s.log.Debug("notification permission not granted, skipping reminder")
		return
	}

	err = s.notifier.Send(ctx, ports.Notification{
		Title: "Study reminder",
		Body:  "You haven't hit today's study goal yet. A short session still counts!",
		Tag:   ReminderTag,
	})
	if err != nil {
		if errors.Is(err, core.ErrNoNotifyPermission) {
			s.log.Debug("notifier declined to send: %v", err)
			return
		}
		s.log.Error("failed to send reminder: %v", err)
	}
}
