package app

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"studyplan/domain/core"
	"studyplan/domain/schedule"
	"studyplan/internal"
	apperrors "studyplan/internal/errors"
	"studyplan/ports"
)

// ScheduleService owns the weekly study schedule: auth-gated reads and
// upserts, plus the held in-memory copy that partial saves draw defaults
// from. After every successful write the held copy is replaced from the row
// the repository returned, never from the submitted payload, so server-side
// defaults win over local drift.
type ScheduleService struct {
	repo ports.ScheduleRepository
	log  *internal.Logger

	mu   sync.Mutex
	held map[uuid.UUID]*schedule.StudySchedule
}

// NewScheduleService creates a schedule service.
func NewScheduleService(repo ports.ScheduleRepository, log *internal.Logger) *ScheduleService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &ScheduleService{
		repo: repo,
		log:  log,
		held: make(map[uuid.UUID]*schedule.StudySchedule),
	}
}

// Fetch returns the user's schedule, or an unpersisted default one on the
// first fetch-miss. A repository failure surfaces as a DATABASE_ERROR,
// distinct from "no schedule yet".
func (s *ScheduleService) Fetch(ctx context.Context, userID uuid.UUID) (*schedule.StudySchedule, error) {
	if userID == uuid.Nil {
		return nil, apperrors.NotAuthenticated()
	}

	stored, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrScheduleNotFound) {
			def := schedule.NewDefault(userID)
			s.hold(userID, def)
			return def, nil
		}
		return nil, apperrors.WithCode(apperrors.CodeDatabaseError, err)
	}

	s.hold(userID, stored)
	return stored, nil
}

// Save upserts the full record. A nil blockedDates keeps the held value so a
// partial save never clears existing blocked dates; nil date bounds persist
// as absent.
func (s *ScheduleService) Save(ctx context.Context, userID uuid.UUID, data []schedule.DayConfig, start, end *core.Date, blockedDates []string) (*schedule.StudySchedule, error) {
	if userID == uuid.Nil {
		return nil, apperrors.NotAuthenticated()
	}
	if err := schedule.ValidateRange(start, end); err != nil {
		return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err)
	}

	if blockedDates == nil {
		blockedDates = s.heldBlockedDates(userID)
	}
	if data == nil {
		data = []schedule.DayConfig{}
	}

	record := &schedule.StudySchedule{
		UserID:       userID,
		StartDate:    start,
		EndDate:      end,
		ScheduleData: data,
		BlockedDates: blockedDates,
	}

	stored, err := s.repo.Upsert(ctx, record)
	if err != nil {
		// Held state stays untouched on failure; the caller decides on retry.
		return nil, apperrors.WithCode(apperrors.CodeDatabaseError, err)
	}

	s.hold(userID, stored)
	return stored, nil
}

// UpdateBlockedDates upserts only the blocked-dates field alongside whatever
// schedule is currently held. Safe without a cached schedule: an empty week
// is persisted rather than failing.
func (s *ScheduleService) UpdateBlockedDates(ctx context.Context, userID uuid.UUID, blockedDates []string) (*schedule.StudySchedule, error) {
	if userID == uuid.Nil {
		return nil, apperrors.NotAuthenticated()
	}
	if blockedDates == nil {
		blockedDates = []string{}
	}
	for _, d := range blockedDates {
		if _, err := core.ParseDate(d); err != nil {
			return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err)
		}
	}

	record := &schedule.StudySchedule{
		UserID:       userID,
		ScheduleData: []schedule.DayConfig{},
		BlockedDates: blockedDates,
	}
	s.mu.Lock()
	if held, ok := s.held[userID]; ok {
		record.StartDate = held.StartDate
		record.EndDate = held.EndDate
		record.ScheduleData = held.ScheduleData
	}
	s.mu.Unlock()

	stored, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeDatabaseError, err)
	}

	s.hold(userID, stored)
	return stored, nil
}

// Held returns the schedule currently held in memory for a user, if any.
func (s *ScheduleService) Held(userID uuid.UUID) (*schedule.StudySchedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	held, ok := s.held[userID]
	return held, ok
}

func (s *ScheduleService) hold(userID uuid.UUID, sched *schedule.StudySchedule) {
	sched.Normalize()
	s.mu.Lock()
	s.held[userID] = sched
	s.mu.Unlock()
}

func (s *ScheduleService) heldBlockedDates(userID uuid.UUID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if held, ok := s.held[userID]; ok {
		return held.BlockedDates
	}
	return []string{}
}
