package repositories

import (
	"context"
	"time"

	"piaas.backend/internal/domain/entities"
)

// SubscriptionRepository interface
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entities.Subscription) error
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*entities.Subscription, error)
	UpdateStatus(ctx context.Context, subscriptionID string, status entities.SubscriptionStatus) error
	AdvanceRenewal(ctx context.Context, subscriptionID string, next time.Time) error
	GetDue(ctx context.Context, now time.Time, limit int) ([]*entities.Subscription, error)
}
