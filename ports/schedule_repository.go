package ports

import (
	"context"

	"github.com/google/uuid"

	"studyplan/domain/schedule"
)

// ScheduleRepository defines persistence for the weekly study schedule.
// At most one record exists per user; writes upsert on the user id.
type ScheduleRepository interface {
	// GetByUser returns the user's schedule or core.ErrScheduleNotFound.
	// A data-access failure is a distinct error, never silently empty.
	GetByUser(ctx context.Context, userID uuid.UUID) (*schedule.StudySchedule, error)

	// Upsert inserts or replaces the user's record and returns the stored
	// row as the server now holds it.
	Upsert(ctx context.Context, s *schedule.StudySchedule) (*schedule.StudySchedule, error)
}
