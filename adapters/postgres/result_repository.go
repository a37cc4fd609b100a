package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"studyplan/domain/session"
	"studyplan/ports"
)

// ResultRepositoryImpl implements ResultRepository for PostgreSQL
type ResultRepositoryImpl struct {
	db *sqlx.DB
}

// NewResultRepository creates a new PostgreSQL practice-result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &ResultRepositoryImpl{db: db}
}

// Create stores a finished practice session, assigning its id.
func (r *ResultRepositoryImpl) Create(ctx context.Context, result *session.Result) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.TakenAt.IsZero() {
		result.TakenAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO practice_results (id, user_id, mode, total_questions, answered, correct, duration_seconds, taken_at, created_at)
		VALUES (:id, :user_id, :mode, :total_questions, :answered, :correct, :duration_seconds, :taken_at, NOW())
	`, result)
	if err != nil {
		return fmt.Errorf("failed to insert practice result: %w", err)
	}
	return nil
}

// ListByUser returns the user's results newest first.
func (r *ResultRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]session.Result, error) {
	if limit <= 0 {
		limit = 50
	}
	var results []session.Result
	err := r.db.SelectContext(ctx, &results, `
		SELECT id, user_id, mode, total_questions, answered, correct, duration_seconds, taken_at
		FROM practice_results
		WHERE user_id = $1
		ORDER BY taken_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list practice results: %w", err)
	}
	return results, nil
}

// ListSince returns results taken at or after since, oldest first.
func (r *ResultRepositoryImpl) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]session.Result, error) {
	var results []session.Result
	err := r.db.SelectContext(ctx, &results, `
		SELECT id, user_id, mode, total_questions, answered, correct, duration_seconds, taken_at
		FROM practice_results
		WHERE user_id = $1 AND taken_at >= $2
		ORDER BY taken_at ASC
	`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list practice results since %s: %w", since.Format(time.RFC3339), err)
	}
	return results, nil
}
