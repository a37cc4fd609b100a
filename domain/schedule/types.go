// Package schedule holds the weekly study schedule model: per-weekday
// targets, an optional date range and the blocked-dates set.
package schedule

import (
	"time"

	"github.com/google/uuid"

	"studyplan/domain/core"
)

// DayConfig is one weekday's study configuration. Hours is ignored while
// Enabled is false but the value survives toggles.
type DayConfig struct {
	Day       string  `json:"day"`
	ShortName string  `json:"short_name"`
	Enabled   bool    `json:"enabled"`
	Hours     float64 `json:"hours"`
}

// StudySchedule is the singleton schedule record for one user.
type StudySchedule struct {
	UserID       uuid.UUID
	StartDate    *core.Date
	EndDate      *core.Date
	ScheduleData []DayConfig
	BlockedDates []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultWeek returns the seven-entry default week, Monday first, all days
// disabled with a two hour target.
func DefaultWeek() []DayConfig {
	return []DayConfig{
		{Day: "Monday", ShortName: "Mon", Enabled: false, Hours: 2},
		{Day: "Tuesday", ShortName: "Tue", Enabled: false, Hours: 2},
		{Day: "Wednesday", ShortName: "Wed", Enabled: false, Hours: 2},
		{Day: "Thursday", ShortName: "Thu", Enabled: false, Hours: 2},
		{Day: "Friday", ShortName: "Fri", Enabled: false, Hours: 2},
		{Day: "Saturday", ShortName: "Sat", Enabled: false, Hours: 2},
		{Day: "Sunday", ShortName: "Sun", Enabled: false, Hours: 2},
	}
}

// NewDefault creates an unpersisted default schedule for a user.
func NewDefault(userID uuid.UUID) *StudySchedule {
	return &StudySchedule{
		UserID:       userID,
		ScheduleData: DefaultWeek(),
		BlockedDates: []string{},
	}
}

// DayFor returns the config entry matching a weekday, or nil if the week
// data does not carry it.
func DayFor(week []DayConfig, weekday time.Weekday) *DayConfig {
	name := weekday.String()
	for i := range week {
		if week[i].Day == name {
			return &week[i]
		}
	}
	return nil
}

// ValidateRange checks the startDate <= endDate invariant. Either bound may
// be absent.
func ValidateRange(start, end *core.Date) error {
	if start == nil || end == nil {
		return nil
	}
	if start.After(*end) {
		return core.ErrInvalidDateRange
	}
	return nil
}

// Normalize replaces nil slices with empty ones so a schedule read from
// malformed or absent stored data behaves like an empty schedule.
func (s *StudySchedule) Normalize() {
	if s.ScheduleData == nil {
		s.ScheduleData = []DayConfig{}
	}
	if s.BlockedDates == nil {
		s.BlockedDates = []string{}
	}
}

// TargetHoursPerWeek sums the enabled days' hour targets.
func (s *StudySchedule) TargetHoursPerWeek() float64 {
	var total float64
	for _, d := range s.ScheduleData {
		if d.Enabled {
			total += d.Hours
		}
	}
	return total
}
