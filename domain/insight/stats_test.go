package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studyplan/domain/schedule"
	"studyplan/domain/session"
	"studyplan/domain/timer"
)

func resultOn(day time.Time, correct, total, durationSec int) session.Result {
	return session.Result{
		Mode:            timer.ModeTimed,
		TotalQuestions:  total,
		Answered:        total,
		Correct:         correct,
		DurationSeconds: durationSec,
		TakenAt:         day,
	}
}

func TestBuildUsageStats_Empty(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	got := BuildUsageStats(nil, nil, now)
	assert.Zero(t, got.SessionCount)
	assert.Zero(t, got.DaysStudied)
	assert.Zero(t, got.CurrentStreak)

	week := schedule.DefaultWeek()
	week[0].Enabled = true
	week[0].Hours = 4
	sched := &schedule.StudySchedule{ScheduleData: week, BlockedDates: []string{"2026-09-01"}}

	got = BuildUsageStats(nil, sched, now)
	assert.InDelta(t, 4.0, got.TargetHoursWeekly, 1e-9)
	assert.Equal(t, 1, got.BlockedDateCount)
}

func TestBuildUsageStats_Summaries(t *testing.T) {
	now := time.Date(2026, time.August, 29, 20, 0, 0, 0, time.UTC)
	results := []session.Result{
		resultOn(now.AddDate(0, 0, -2), 5, 10, 30*60),
		resultOn(now.AddDate(0, 0, -1), 7, 10, 60*60),
		resultOn(now, 9, 10, 30*60),
	}

	got := BuildUsageStats(results, nil, now)
	assert.Equal(t, 3, got.SessionCount)
	assert.Equal(t, 3, got.DaysStudied)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.InDelta(t, 70.0, got.AverageScore, 1e-9)
	assert.InDelta(t, 40.0, got.DailyMinutes.Mean, 1e-9)
	assert.InDelta(t, 30.0, got.DailyMinutes.Median, 1e-9)
	// Scores 50, 70, 90 in time order: slope +20 per session.
	assert.InDelta(t, 20.0, got.ScoreTrendSlope, 1e-9)
}

func TestBuildUsageStats_TrendIgnoresInputOrder(t *testing.T) {
	now := time.Date(2026, time.August, 29, 20, 0, 0, 0, time.UTC)
	// Same data as above but shuffled; the trend must still be positive.
	results := []session.Result{
		resultOn(now, 9, 10, 30*60),
		resultOn(now.AddDate(0, 0, -2), 5, 10, 30*60),
		resultOn(now.AddDate(0, 0, -1), 7, 10, 60*60),
	}

	got := BuildUsageStats(results, nil, now)
	assert.InDelta(t, 20.0, got.ScoreTrendSlope, 1e-9)
}

func TestStreak_UnfinishedTodayDoesNotBreak(t *testing.T) {
	now := time.Date(2026, time.August, 29, 9, 0, 0, 0, time.UTC)
	results := []session.Result{
		resultOn(now.AddDate(0, 0, -1), 8, 10, 45*60),
		resultOn(now.AddDate(0, 0, -2), 6, 10, 45*60),
	}

	got := BuildUsageStats(results, nil, now)
	assert.Equal(t, 2, got.CurrentStreak)
}

func TestStreak_GapResets(t *testing.T) {
	now := time.Date(2026, time.August, 29, 9, 0, 0, 0, time.UTC)
	results := []session.Result{
		resultOn(now, 8, 10, 45*60),
		// Two days ago only; yesterday missing.
		resultOn(now.AddDate(0, 0, -2), 6, 10, 45*60),
	}

	got := BuildUsageStats(results, nil, now)
	assert.Equal(t, 1, got.CurrentStreak)
}

func TestResult_ScoreAndMinutes(t *testing.T) {
	r := session.Result{TotalQuestions: 8, Correct: 6, DurationSeconds: 61}
	assert.InDelta(t, 75.0, r.Score(), 1e-9)
	assert.Equal(t, 2, r.StudyMinutes())

	empty := session.Result{}
	assert.Zero(t, empty.Score())
	assert.Zero(t, empty.StudyMinutes())
}
