package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"studyplan/domain/insight"
	"studyplan/ports"
)

// UsageRepositoryImpl implements UsageRepository for PostgreSQL
type UsageRepositoryImpl struct {
	db *sqlx.DB
}

// NewUsageRepository creates a new PostgreSQL AI usage repository
func NewUsageRepository(db *sqlx.DB) ports.UsageRepository {
	return &UsageRepositoryImpl{db: db}
}

// Record stores one AI proxy usage record.
func (r *UsageRepositoryImpl) Record(ctx context.Context, record *insight.UsageRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO insight_usage (id, user_id, insight_type, model, prompt_tokens, completion_tokens, total_tokens, created_at)
		VALUES (:id, :user_id, :insight_type, :model, :prompt_tokens, :completion_tokens, :total_tokens, :created_at)
	`, record)
	if err != nil {
		return fmt.Errorf("failed to insert usage record: %w", err)
	}
	return nil
}

// TotalTokensSince sums a user's token spend since a point in time.
func (r *UsageRepositoryImpl) TotalTokensSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(total_tokens), 0)
		FROM insight_usage
		WHERE user_id = $1 AND created_at >= $2
	`, userID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to sum token usage: %w", err)
	}
	return total, nil
}
