package app

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"studyplan/adapters/excel"
	"studyplan/domain/core"
	"studyplan/domain/schedule"
	apperrors "studyplan/internal/errors"
	"studyplan/ports"
)

// reportResultLimit caps how many practice results a report includes.
const reportResultLimit = 200

// ReportService assembles the downloadable progress workbook.
type ReportService struct {
	schedules ports.ScheduleRepository
	results   ports.ResultRepository
	writer    *excel.ReportWriter
}

// NewReportService creates a report service.
func NewReportService(schedules ports.ScheduleRepository, results ports.ResultRepository) *ReportService {
	return &ReportService{
		schedules: schedules,
		results:   results,
		writer:    excel.NewReportWriter(),
	}
}

// Write renders the user's progress report to w. A missing schedule renders
// as the default week rather than failing.
func (s *ReportService) Write(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	if userID == uuid.Nil {
		return apperrors.NotAuthenticated()
	}

	sched, err := s.schedules.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, core.ErrScheduleNotFound) {
			return apperrors.WithCode(apperrors.CodeDatabaseError, err)
		}
		sched = schedule.NewDefault(userID)
	}

	results, err := s.results.ListByUser(ctx, userID, reportResultLimit)
	if err != nil {
		return apperrors.WithCode(apperrors.CodeDatabaseError, err)
	}

	if err := s.writer.Write(w, sched, results); err != nil {
		return apperrors.Wrap(err, "failed to render report")
	}
	return nil
}
