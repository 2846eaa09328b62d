package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"piaas.backend/internal/domain/entities"
)

// WebhookEventRepository interface. UpdateAttempt is conditional on the
// event still being PENDING so overlapping sweeps no-op on terminal events.
type WebhookEventRepository interface {
	Create(ctx context.Context, event *entities.WebhookEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.WebhookEvent, error)
	GetDue(ctx context.Context, now time.Time, limit int) ([]*entities.WebhookEvent, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]*entities.WebhookEvent, error)
	UpdateAttempt(ctx context.Context, event *entities.WebhookEvent) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
