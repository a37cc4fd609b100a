package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplan/domain/core"
	"studyplan/domain/schedule"
	apperrors "studyplan/internal/errors"
)

// fakeScheduleRepo is an in-memory ScheduleRepository. Upsert returns a copy
// with server-managed timestamps set, mimicking RETURNING on the real store.
type fakeScheduleRepo struct {
	stored      map[uuid.UUID]*schedule.StudySchedule
	failGet     error
	failUpsert  error
	getCalls    int
	upsertCalls int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{stored: make(map[uuid.UUID]*schedule.StudySchedule)}
}

func (f *fakeScheduleRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*schedule.StudySchedule, error) {
	f.getCalls++
	if f.failGet != nil {
		return nil, f.failGet
	}
	s, ok := f.stored[userID]
	if !ok {
		return nil, core.ErrScheduleNotFound
	}
	return copySchedule(s), nil
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, s *schedule.StudySchedule) (*schedule.StudySchedule, error) {
	f.upsertCalls++
	if f.failUpsert != nil {
		return nil, f.failUpsert
	}
	stored := copySchedule(s)
	stored.UpdatedAt = time.Now()
	if prev, ok := f.stored[s.UserID]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.CreatedAt = stored.UpdatedAt
	}
	stored.Normalize()
	f.stored[s.UserID] = stored
	return copySchedule(stored), nil
}

func copySchedule(s *schedule.StudySchedule) *schedule.StudySchedule {
	out := *s
	out.ScheduleData = append([]schedule.DayConfig(nil), s.ScheduleData...)
	out.BlockedDates = append([]string(nil), s.BlockedDates...)
	return &out
}

func enabledWeek(hours float64) []schedule.DayConfig {
	week := schedule.DefaultWeek()
	for i := range week {
		week[i].Enabled = true
		week[i].Hours = hours
	}
	return week
}

func TestScheduleService_NotAuthenticated(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, nil)

	_, err := svc.Fetch(context.Background(), uuid.Nil)
	assert.Equal(t, apperrors.CodeNotAuthenticated, apperrors.GetCode(err))

	_, err = svc.Save(context.Background(), uuid.Nil, nil, nil, nil, nil)
	assert.Equal(t, apperrors.CodeNotAuthenticated, apperrors.GetCode(err))

	_, err = svc.UpdateBlockedDates(context.Background(), uuid.Nil, []string{"2026-09-01"})
	assert.Equal(t, apperrors.CodeNotAuthenticated, apperrors.GetCode(err))

	// No repository traffic for unauthenticated callers.
	assert.Zero(t, repo.getCalls)
	assert.Zero(t, repo.upsertCalls)
}

func TestScheduleService_FetchMissReturnsDefaults(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, nil)
	userID := uuid.New()

	got, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, got.ScheduleData, 7)
	assert.Empty(t, got.BlockedDates)
	// Defaults are not persisted by a plain fetch.
	assert.Zero(t, repo.upsertCalls)
}

func TestScheduleService_FetchErrorIsDistinctFromMiss(t *testing.T) {
	repo := newFakeScheduleRepo()
	repo.failGet = errors.New("connection refused")
	svc := NewScheduleService(repo, nil)

	_, err := svc.Fetch(context.Background(), uuid.New())
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.GetCode(err))
}

func TestScheduleService_PartialSaveKeepsBlockedDates(t *testing.T) {
	repo := newFakeScheduleRepo()
	userID := uuid.New()
	repo.stored[userID] = &schedule.StudySchedule{
		UserID:       userID,
		ScheduleData: enabledWeek(2),
		BlockedDates: []string{"2026-09-01", "2026-09-15"},
	}
	svc := NewScheduleService(repo, nil)

	_, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)

	// Save new week data with blockedDates omitted.
	saved, err := svc.Save(context.Background(), userID, enabledWeek(3), nil, nil, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2026-09-01", "2026-09-15"}, saved.BlockedDates)
	assert.InDelta(t, 3.0, saved.ScheduleData[0].Hours, 1e-9)
}

func TestScheduleService_UpdateBlockedDatesPreservesScheduleData(t *testing.T) {
	repo := newFakeScheduleRepo()
	userID := uuid.New()
	week := enabledWeek(2.5)
	repo.stored[userID] = &schedule.StudySchedule{
		UserID:       userID,
		ScheduleData: week,
		BlockedDates: []string{},
	}
	svc := NewScheduleService(repo, nil)

	_, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)

	updated, err := svc.UpdateBlockedDates(context.Background(), userID, []string{"2026-10-10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-10"}, updated.BlockedDates)
	require.Len(t, updated.ScheduleData, 7)
	assert.InDelta(t, 2.5, updated.ScheduleData[0].Hours, 1e-9)
}

func TestScheduleService_UpdateBlockedDatesWithoutCachedSchedule(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, nil)
	userID := uuid.New()

	// No Fetch first: must persist an empty week rather than fail.
	updated, err := svc.UpdateBlockedDates(context.Background(), userID, []string{"2026-11-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-11-01"}, updated.BlockedDates)
	assert.Empty(t, updated.ScheduleData)
}

func TestScheduleService_UpdateBlockedDatesRejectsMalformedDates(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo(), nil)

	_, err := svc.UpdateBlockedDates(context.Background(), uuid.New(), []string{"01/09/2026"})
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestScheduleService_SaveRejectsInvertedRange(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo(), nil)
	start := core.NewDate(2026, time.June, 30)
	end := core.NewDate(2026, time.March, 1)

	_, err := svc.Save(context.Background(), uuid.New(), enabledWeek(1), &start, &end, nil)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestScheduleService_FailedSaveLeavesHeldStateUnchanged(t *testing.T) {
	repo := newFakeScheduleRepo()
	userID := uuid.New()
	repo.stored[userID] = &schedule.StudySchedule{
		UserID:       userID,
		ScheduleData: enabledWeek(2),
		BlockedDates: []string{"2026-09-01"},
	}
	svc := NewScheduleService(repo, nil)

	_, err := svc.Fetch(context.Background(), userID)
	require.NoError(t, err)

	repo.failUpsert = errors.New("server exploded")
	_, err = svc.Save(context.Background(), userID, enabledWeek(9), nil, nil, nil)
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.GetCode(err))

	held, ok := svc.Held(userID)
	require.True(t, ok)
	assert.InDelta(t, 2.0, held.ScheduleData[0].Hours, 1e-9)
	assert.Equal(t, []string{"2026-09-01"}, held.BlockedDates)
}

func TestScheduleService_LocalStateAdoptsReturnedRow(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, nil)
	userID := uuid.New()

	saved, err := svc.Save(context.Background(), userID, enabledWeek(2), nil, nil, []string{"2026-09-01"})
	require.NoError(t, err)
	// Server-managed fields come back from the store, not the payload.
	assert.False(t, saved.UpdatedAt.IsZero())

	held, ok := svc.Held(userID)
	require.True(t, ok)
	assert.Equal(t, saved.UpdatedAt, held.UpdatedAt)
}
