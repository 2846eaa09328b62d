package repositories

import (
	"context"
	"time"

	"piaas.backend/internal/domain/entities"
)

// PaymentIntentRepository interface. Transition is the single mutation
// primitive: a conditional single-row update guarded by the allowed source
// statuses. Implementations return ErrConflict when the row exists but its
// status is not in from, and ErrNotFound when there is no row at all.
type PaymentIntentRepository interface {
	Create(ctx context.Context, intent *entities.PaymentIntent) error
	GetByIntentID(ctx context.Context, intentID string) (*entities.PaymentIntent, error)
	Transition(ctx context.Context, intentID string, from []entities.IntentStatus, to entities.IntentStatus, fields map[string]interface{}) error
	PromoteStuckCreated(ctx context.Context, before time.Time) (int64, error)
}
