package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"studyplan/domain/core"
	"studyplan/domain/schedule"
	"studyplan/ports"
)

// ScheduleRepositoryImpl implements ScheduleRepository for PostgreSQL
type ScheduleRepositoryImpl struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new PostgreSQL schedule repository
func NewScheduleRepository(db *sqlx.DB) ports.ScheduleRepository {
	return &ScheduleRepositoryImpl{db: db}
}

type scheduleRow struct {
	UserID       uuid.UUID      `db:"user_id"`
	StartDate    sql.NullTime   `db:"start_date"`
	EndDate      sql.NullTime   `db:"end_date"`
	ScheduleData []byte         `db:"schedule_data"`
	BlockedDates pq.StringArray `db:"blocked_dates"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// GetByUser retrieves the user's schedule or core.ErrScheduleNotFound.
func (r *ScheduleRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID) (*schedule.StudySchedule, error) {
	var row scheduleRow
	err := r.db.GetContext(ctx, &row, `
		SELECT user_id, start_date, end_date, schedule_data, blocked_dates, created_at, updated_at
		FROM study_schedules
		WHERE user_id = $1
	`, userID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	return row.toDomain(), nil
}

// Upsert inserts or replaces the record keyed by user id and returns the
// stored row, so callers adopt server-side defaults instead of their payload.
func (r *ScheduleRepositoryImpl) Upsert(ctx context.Context, s *schedule.StudySchedule) (*schedule.StudySchedule, error) {
	data := s.ScheduleData
	if data == nil {
		data = []schedule.DayConfig{}
	}
	scheduleJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule data: %w", err)
	}

	blocked := s.BlockedDates
	if blocked == nil {
		blocked = []string{}
	}

	var row scheduleRow
	err = r.db.GetContext(ctx, &row, `
		INSERT INTO study_schedules (user_id, start_date, end_date, schedule_data, blocked_dates, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			schedule_data = EXCLUDED.schedule_data,
			blocked_dates = EXCLUDED.blocked_dates,
			updated_at = NOW()
		RETURNING user_id, start_date, end_date, schedule_data, blocked_dates, created_at, updated_at
	`, s.UserID, dateArg(s.StartDate), dateArg(s.EndDate), scheduleJSON, pq.StringArray(blocked))

	if err != nil {
		return nil, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	return row.toDomain(), nil
}

// dateArg converts an optional date to a driver value, absent as NULL.
func dateArg(d *core.Date) interface{} {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time()
}

func (row *scheduleRow) toDomain() *schedule.StudySchedule {
	s := &schedule.StudySchedule{
		UserID:       row.UserID,
		BlockedDates: []string(row.BlockedDates),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.StartDate.Valid {
		d := core.DateOf(row.StartDate.Time)
		s.StartDate = &d
	}
	if row.EndDate.Valid {
		d := core.DateOf(row.EndDate.Time)
		s.EndDate = &d
	}
	// Malformed or absent schedule_data reads as an empty week rather than
	// failing the fetch.
	if len(row.ScheduleData) > 0 {
		var week []schedule.DayConfig
		if err := json.Unmarshal(row.ScheduleData, &week); err == nil {
			s.ScheduleData = week
		}
	}
	s.Normalize()
	return s
}
