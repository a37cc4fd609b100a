package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studyplan/domain/session"
)

// ResultRepository defines persistence for finished practice sessions.
type ResultRepository interface {
	// Create stores a new result, assigning its id.
	Create(ctx context.Context, result *session.Result) error

	// ListByUser returns the user's results newest first, capped at limit.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]session.Result, error)

	// ListSince returns results taken at or after since, oldest first.
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]session.Result, error)
}
