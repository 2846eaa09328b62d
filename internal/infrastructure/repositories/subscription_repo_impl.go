package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"piaas.backend/internal/domain/entities"
	domainerrors "piaas.backend/internal/domain/errors"
	"piaas.backend/internal/infrastructure/models"
)

// SubscriptionRepository implements subscription data operations
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create creates a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, sub *entities.Subscription) error {
	m := &models.Subscription{
		ID:              sub.ID,
		SubscriptionID:  sub.SubscriptionID,
		VendorID:        sub.VendorID,
		ProductID:       sub.ProductID,
		PlanID:          sub.PlanID,
		CustomerEmail:   sub.CustomerEmail.Ptr(),
		Status:          string(sub.Status),
		SrcChainID:      sub.SrcChainID,
		DestChainID:     sub.DestChainID,
		BillingInterval: string(sub.BillingInterval),
		AmountUSDCMinor: sub.AmountUSDCMinor,
		NextRenewalAt:   sub.NextRenewalAt,
		CreatedAt:       sub.CreatedAt,
		UpdatedAt:       sub.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	sub.ID = m.ID
	return nil
}

// GetBySubscriptionID gets a subscription by its public identifier
func (r *SubscriptionRepository) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*entities.Subscription, error) {
	var m models.Subscription
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("subscription_id = ?", subscriptionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateStatus updates a subscription's status
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, subscriptionID string, status entities.SubscriptionStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscription_id = ?", subscriptionID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AdvanceRenewal moves next_renewal_at forward after a successful renewal
func (r *SubscriptionRepository) AdvanceRenewal(ctx context.Context, subscriptionID string, next time.Time) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscription_id = ?", subscriptionID).
		Updates(map[string]interface{}{
			"next_renewal_at": next,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// GetDue gets ACTIVE subscriptions due for renewal
func (r *SubscriptionRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*entities.Subscription, error) {
	var ms []models.Subscription
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("status = ? AND next_renewal_at <= ?", string(entities.SubscriptionStatusActive), now).
		Order("next_renewal_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	subs := make([]*entities.Subscription, 0, len(ms))
	for _, m := range ms {
		model := m
		subs = append(subs, r.toEntity(&model))
	}
	return subs, nil
}

func (r *SubscriptionRepository) toEntity(m *models.Subscription) *entities.Subscription {
	return &entities.Subscription{
		ID:              m.ID,
		SubscriptionID:  m.SubscriptionID,
		VendorID:        m.VendorID,
		ProductID:       m.ProductID,
		PlanID:          m.PlanID,
		CustomerEmail:   null.StringFromPtr(m.CustomerEmail),
		Status:          entities.SubscriptionStatus(m.Status),
		SrcChainID:      m.SrcChainID,
		DestChainID:     m.DestChainID,
		BillingInterval: entities.BillingInterval(m.BillingInterval),
		AmountUSDCMinor: m.AmountUSDCMinor,
		NextRenewalAt:   m.NextRenewalAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
