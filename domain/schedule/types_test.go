package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplan/domain/core"
)

func TestDefaultWeek(t *testing.T) {
	week := DefaultWeek()
	require.Len(t, week, 7)

	seen := make(map[string]bool)
	for _, d := range week {
		assert.False(t, seen[d.Day], "duplicate weekday %s", d.Day)
		seen[d.Day] = true
		assert.False(t, d.Enabled)
	}
}

func TestDayFor(t *testing.T) {
	week := DefaultWeek()

	day := DayFor(week, time.Wednesday)
	require.NotNil(t, day)
	assert.Equal(t, "Wednesday", day.Day)
	assert.Equal(t, "Wed", day.ShortName)

	assert.Nil(t, DayFor([]DayConfig{}, time.Monday))
}

func TestValidateRange(t *testing.T) {
	early := core.NewDate(2026, time.March, 1)
	late := core.NewDate(2026, time.June, 30)

	assert.NoError(t, ValidateRange(nil, nil))
	assert.NoError(t, ValidateRange(&early, nil))
	assert.NoError(t, ValidateRange(nil, &late))
	assert.NoError(t, ValidateRange(&early, &late))
	assert.NoError(t, ValidateRange(&early, &early))
	assert.ErrorIs(t, ValidateRange(&late, &early), core.ErrInvalidDateRange)
}

func TestTargetHoursPerWeek_SumsEnabledDaysOnly(t *testing.T) {
	week := DefaultWeek()
	week[0].Enabled = true
	week[0].Hours = 3
	week[5].Enabled = true
	week[5].Hours = 1.5
	// Disabled hours preserved but not counted.
	week[2].Hours = 8

	s := &StudySchedule{ScheduleData: week}
	assert.InDelta(t, 4.5, s.TargetHoursPerWeek(), 1e-9)
}

func TestNormalize(t *testing.T) {
	s := &StudySchedule{}
	s.Normalize()
	assert.NotNil(t, s.ScheduleData)
	assert.NotNil(t, s.BlockedDates)
	assert.Empty(t, s.ScheduleData)
}
