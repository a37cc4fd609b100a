package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyplan/domain/core"
	"studyplan/domain/session"
	"studyplan/domain/timer"
	"studyplan/internal"
	apperrors "studyplan/internal/errors"
	"studyplan/internal/clock"
	"studyplan/ports"
)

// SessionState is a snapshot of one running practice session.
type SessionState struct {
	ID        uuid.UUID  `json:"id"`
	Mode      timer.Mode `json:"mode"`
	Elapsed   int        `json:"elapsed_seconds"`
	Remaining int        `json:"time_remaining"`
	Paused    bool       `json:"is_paused"`
	Expired   bool       `json:"is_expired"`
	LowTime   bool       `json:"low_time"`
	Display   string     `json:"display"`
}

type activeSession struct {
	userID uuid.UUID
	sess   *timer.Session
	runner *clock.Runner
}

// SessionService runs practice-session timers. Each session owns one Runner
// ticking once a second; the service is the single owner that stops it,
// exactly once, when the session finishes or is abandoned.
type SessionService struct {
	clk     clock.Clock
	results ports.ResultRepository
	log     *internal.Logger

	mu     sync.Mutex
	active map[uuid.UUID]*activeSession
}

// NewSessionService creates a session service.
func NewSessionService(clk clock.Clock, results ports.ResultRepository, log *internal.Logger) *SessionService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &SessionService{
		clk:     clk,
		results: results,
		log:     log,
		active:  make(map[uuid.UUID]*activeSession),
	}
}

// Start creates a session and begins ticking it.
func (s *SessionService) Start(ctx context.Context, userID uuid.UUID, mode timer.Mode, initialSeconds int) (SessionState, error) {
	if userID == uuid.Nil {
		return SessionState{}, apperrors.NotAuthenticated()
	}
	if !timer.ValidMode(mode) {
		return SessionState{}, apperrors.WithCode(apperrors.CodeInvalidInput, core.ErrInvalidSessionMode)
	}

	id := uuid.New()
	sess := timer.NewSession(mode, initialSeconds)
	sess.OnExpire(func() {
		s.log.Info("session %s time expired", id)
	})

	entry := &activeSession{userID: userID, sess: sess}
	entry.runner = clock.NewRunner(s.clk, time.Second, func(time.Time) {
		s.mu.Lock()
		sess.Tick()
		s.mu.Unlock()
	})

	s.mu.Lock()
	s.active[id] = entry
	s.mu.Unlock()
	entry.runner.Start()

	return s.snapshot(id, entry), nil
}

// State returns a snapshot of a running session.
func (s *SessionService) State(id uuid.UUID) (SessionState, error) {
	s.mu.Lock()
	entry, ok := s.active[id]
	s.mu.Unlock()
	if !ok {
		return SessionState{}, apperrors.WithCode(apperrors.CodeNotFound, core.ErrSessionNotFound)
	}
	return s.snapshot(id, entry), nil
}

// Toggle flips the pause state; the change applies on the next tick boundary.
func (s *SessionService) Toggle(id uuid.UUID) (SessionState, error) {
	s.mu.Lock()
	entry, ok := s.active[id]
	if ok {
		entry.sess.Toggle()
	}
	s.mu.Unlock()
	if !ok {
		return SessionState{}, apperrors.WithCode(apperrors.CodeNotFound, core.ErrSessionNotFound)
	}
	return s.snapshot(id, entry), nil
}

// Finish stops the session timer and persists the practice result.
func (s *SessionService) Finish(ctx context.Context, id uuid.UUID, totalQuestions, answered, correct int) (*session.Result, error) {
	s.mu.Lock()
	entry, ok := s.active[id]
	if ok {
		delete(s.active, id)
	}
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.WithCode(apperrors.CodeNotFound, core.ErrSessionNotFound)
	}

	entry.runner.Stop()

	result := &session.Result{
		UserID:          entry.userID,
		Mode:            entry.sess.Mode(),
		TotalQuestions:  totalQuestions,
		Answered:        answered,
		Correct:         correct,
		DurationSeconds: entry.sess.Elapsed(),
		TakenAt:         s.clk.Now(),
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, apperrors.WithCode(apperrors.CodeDatabaseError, err)
	}
	return result, nil
}

// Abandon stops and drops a session without recording a result.
func (s *SessionService) Abandon(id uuid.UUID) error {
	s.mu.Lock()
	entry, ok := s.active[id]
	if ok {
		delete(s.active, id)
	}
	s.mu.Unlock()
	if !ok {
		return apperrors.WithCode(apperrors.CodeNotFound, core.ErrSessionNotFound)
	}
	entry.runner.Stop()
	return nil
}

// Shutdown stops every active session timer.
func (s *SessionService) Shutdown() {
	s.mu.Lock()
	entries := make([]*activeSession, 0, len(s.active))
	for id, entry := range s.active {
		entries = append(entries, entry)
		delete(s.active, id)
	}
	s.mu.Unlock()
	for _, entry := range entries {
		entry.runner.Stop()
	}
}

func (s *SessionService) snapshot(id uuid.UUID, entry *activeSession) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := entry.sess
	display := timer.FormatSeconds(sess.Elapsed())
	if sess.Mode() == timer.ModeTimed {
		display = timer.FormatSeconds(sess.Remaining())
	}
	return SessionState{
		ID:        id,
		Mode:      sess.Mode(),
		Elapsed:   sess.Elapsed(),
		Remaining: sess.Remaining(),
		Paused:    sess.Paused(),
		Expired:   sess.Expired(),
		LowTime:   sess.LowTime(),
		Display:   display,
	}
}
