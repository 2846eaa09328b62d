package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"piaas.backend/internal/domain/entities"
	domainerrors "piaas.backend/internal/domain/errors"
	"piaas.backend/internal/infrastructure/models"
)

// WebhookEventRepository implements webhook event data operations
type WebhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Create creates a new webhook event
func (r *WebhookEventRepository) Create(ctx context.Context, event *entities.WebhookEvent) error {
	m := r.toModel(event)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.ID = m.ID
	return nil
}

// GetByID gets a webhook event by ID
func (r *WebhookEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.WebhookEvent, error) {
	var m models.WebhookEvent
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetDue gets PENDING events whose next_retry_at has passed
func (r *WebhookEventRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*entities.WebhookEvent, error) {
	var ms []models.WebhookEvent
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("status = ? AND next_retry_at <= ?", string(entities.WebhookStatusPending), now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	events := make([]*entities.WebhookEvent, 0, len(ms))
	for _, m := range ms {
		model := m
		events = append(events, r.toEntity(&model))
	}
	return events, nil
}

// ListByVendor lists a vendor's events newest-first
func (r *WebhookEventRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]*entities.WebhookEvent, error) {
	var ms []models.WebhookEvent
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	events := make([]*entities.WebhookEvent, 0, len(ms))
	for _, m := range ms {
		model := m
		events = append(events, r.toEntity(&model))
	}
	return events, nil
}

// UpdateAttempt records the outcome of a delivery attempt. Conditional on
// the row still being PENDING; a terminal row yields ErrConflict so
// concurrent sweeps no-op.
func (r *WebhookEventRepository) UpdateAttempt(ctx context.Context, event *entities.WebhookEvent) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.WebhookEvent{}).
		Where("id = ? AND status = ?", event.ID, string(entities.WebhookStatusPending)).
		Updates(map[string]interface{}{
			"status":          string(event.Status),
			"attempts":        event.Attempts,
			"next_retry_at":   event.NextRetryAt.Ptr(),
			"last_attempt_at": event.LastAttemptAt.Ptr(),
			"response_status": event.ResponseStatus.Ptr(),
			"response_body":   event.ResponseBody.Ptr(),
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

// DeleteOlderThan removes events created before cutoff, returning the count
func (r *WebhookEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.WebhookEvent{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *WebhookEventRepository) toModel(e *entities.WebhookEvent) *models.WebhookEvent {
	return &models.WebhookEvent{
		ID:             e.ID,
		VendorID:       e.VendorID,
		EventType:      e.EventType,
		Payload:        e.Payload,
		WebhookURL:     e.WebhookURL,
		Status:         string(e.Status),
		Attempts:       e.Attempts,
		MaxAttempts:    e.MaxAttempts,
		NextRetryAt:    e.NextRetryAt.Ptr(),
		LastAttemptAt:  e.LastAttemptAt.Ptr(),
		ResponseStatus: e.ResponseStatus.Ptr(),
		ResponseBody:   e.ResponseBody.Ptr(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (r *WebhookEventRepository) toEntity(m *models.WebhookEvent) *entities.WebhookEvent {
	return &entities.WebhookEvent{
		ID:             m.ID,
		VendorID:       m.VendorID,
		EventType:      m.EventType,
		Payload:        m.Payload,
		WebhookURL:     m.WebhookURL,
		Status:         entities.WebhookStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		NextRetryAt:    null.TimeFromPtr(m.NextRetryAt),
		LastAttemptAt:  null.TimeFromPtr(m.LastAttemptAt),
		ResponseStatus: null.IntFromPtr(m.ResponseStatus),
		ResponseBody:   null.StringFromPtr(m.ResponseBody),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
