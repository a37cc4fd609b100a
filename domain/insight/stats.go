package insight

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"studyplan/domain/schedule"
	"studyplan/domain/session"
)

// MinutesSummary describes the distribution of daily study minutes.
type MinutesSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// UsageStats is the free-form context object sent with insight requests.
type UsageStats struct {
	SessionCount      int            `json:"session_count"`
	DaysStudied       int            `json:"days_studied"`
	CurrentStreak     int            `json:"current_streak"`
	AverageScore      float64        `json:"average_score"`
	ScoreTrendSlope   float64        `json:"score_trend_slope"`
	DailyMinutes      MinutesSummary `json:"daily_minutes"`
	TargetHoursWeekly float64        `json:"target_hours_weekly"`
	BlockedDateCount  int            `json:"blocked_date_count"`
}

// BuildUsageStats summarizes practice results against the schedule. results
// may arrive in any order; now anchors the streak computation.
func BuildUsageStats(results []session.Result, sched *schedule.StudySchedule, now time.Time) UsageStats {
	out := UsageStats{SessionCount: len(results)}
	if sched != nil {
		out.TargetHoursWeekly = sched.TargetHoursPerWeek()
		out.BlockedDateCount = len(sched.BlockedDates)
	}
	if len(results) == 0 {
		return out
	}

	minutesByDay := make(map[string]int)
	scores := make([]float64, 0, len(results))
	ordered := make([]session.Result, len(results))
	copy(ordered, results)
	sortResultsByTime(ordered)

	for _, r := range ordered {
		day := r.TakenAt.Format("2006-01-02")
		minutesByDay[day] += r.StudyMinutes()
		scores = append(scores, r.Score())
	}
	out.DaysStudied = len(minutesByDay)
	out.CurrentStreak = streak(minutesByDay, now)

	if mean, err := stats.Mean(scores); err == nil {
		out.AverageScore = mean
	}

	daily := make([]float64, 0, len(minutesByDay))
	for _, m := range minutesByDay {
		daily = append(daily, float64(m))
	}
	if mean, err := stats.Mean(daily); err == nil {
		out.DailyMinutes.Mean = mean
	}
	if median, err := stats.Median(daily); err == nil {
		out.DailyMinutes.Median = median
	}
	if sd, err := stats.StandardDeviation(daily); err == nil {
		out.DailyMinutes.StdDev = sd
	}

	if len(scores) >= 2 {
		xs := make([]float64, len(scores))
		for i := range xs {
			xs[i] = float64(i)
		}
		_, slope := stat.LinearRegression(xs, scores, nil, false)
		out.ScoreTrendSlope = slope
	}

	return out
}

// streak counts consecutive days with any study time, ending today or
// yesterday (an unfinished today does not break the streak).
func streak(minutesByDay map[string]int, now time.Time) int {
	day := now
	if minutesByDay[day.Format("2006-01-02")] == 0 {
		day = day.AddDate(0, 0, -1)
	}
	count := 0
	for minutesByDay[day.Format("2006-01-02")] > 0 {
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

func sortResultsByTime(results []session.Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].TakenAt.Before(results[j].TakenAt)
	})
}
