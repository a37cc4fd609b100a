package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studyplan/domain/insight"
)

// UsageRepository records AI proxy calls for quota accounting.
type UsageRepository interface {
	// Record stores one usage record.
	Record(ctx context.Context, record *insight.UsageRecord) error

	// TotalTokensSince sums total tokens spent by a user since a point in
	// time. Zero rows is zero tokens, not an error.
	TotalTokensSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}
