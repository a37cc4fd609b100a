package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"studyplan/domain/core"
	"studyplan/domain/schedule"
	"studyplan/internal/clock"
	"studyplan/ports"
)

// NewDailyGoalChecker builds the reminder predicate for one user: true when
// today needs no reminder. Days that are disabled, blocked, or outside the
// schedule range count as met, so the reminder only fires on planned study
// days with minutes still missing.
func NewDailyGoalChecker(
	schedules ports.ScheduleRepository,
	results ports.ResultRepository,
	clk clock.Clock,
	userID uuid.UUID,
) GoalChecker {
	return func(ctx context.Context) (bool, error) {
		now := clk.Now()
		today := core.DateOf(now)

		sched, err := schedules.GetByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, core.ErrScheduleNotFound) {
				return true, nil // nothing planned, nothing to nag about
			}
			return false, err
		}

		if sched.StartDate != nil && today.Before(*sched.StartDate) {
			return true, nil
		}
		if sched.EndDate != nil && today.After(*sched.EndDate) {
			return true, nil
		}
		if schedule.IsBlocked(sched.BlockedDates, today.String()) {
			return true, nil
		}

		day := schedule.DayFor(sched.ScheduleData, now.Weekday())
		if day == nil || !day.Enabled || day.Hours <= 0 {
			return true, nil
		}

		midnight := today.Time()
		todays, err := results.ListSince(ctx, userID, midnight)
		if err != nil {
			return false, err
		}
		minutes := 0
		for _, r := range todays {
			minutes += r.StudyMinutes()
		}
		return float64(minutes) >= day.Hours*60, nil
	}
}
