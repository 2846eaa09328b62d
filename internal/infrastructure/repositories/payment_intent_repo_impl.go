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

// PaymentIntentRepository implements payment intent data operations
type PaymentIntentRepository struct {
	db *gorm.DB
}

// NewPaymentIntentRepository creates a new payment intent repository
func NewPaymentIntentRepository(db *gorm.DB) *PaymentIntentRepository {
	return &PaymentIntentRepository{db: db}
}

// Create creates a new payment intent
func (r *PaymentIntentRepository) Create(ctx context.Context, intent *entities.PaymentIntent) error {
	m := &models.PaymentIntent{
		ID:                 intent.ID,
		IntentID:           intent.IntentID,
		VendorID:           intent.VendorID,
		ProductID:          intent.ProductID,
		CustomerEmail:      intent.CustomerEmail.Ptr(),
		SrcChainID:         intent.SrcChainID,
		DestChainID:        intent.DestChainID,
		AmountUSDCMinor:    intent.AmountUSDCMinor,
		BridgeFeeUSDCMinor: intent.BridgeFeeUSDCMinor,
		TotalUSDCMinor:     intent.TotalUSDCMinor,
		Status:             string(intent.Status),
		RouterAddress:      intent.RouterAddress,
		RouterFunction:     intent.RouterFunction,
		Calldata:           intent.Calldata,
		CreatedAt:          intent.CreatedAt,
		UpdatedAt:          intent.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	intent.ID = m.ID
	return nil
}

// GetByIntentID gets a payment intent by its public identifier
func (r *PaymentIntentRepository) GetByIntentID(ctx context.Context, intentID string) (*entities.PaymentIntent, error) {
	var m models.PaymentIntent
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("intent_id = ?", intentID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Transition performs a conditional status update guarded by the allowed
// source statuses. Zero rows affected means either the intent does not exist
// (ErrNotFound) or its status is outside from (ErrConflict).
func (r *PaymentIntentRepository) Transition(ctx context.Context, intentID string, from []entities.IntentStatus, to entities.IntentStatus, fields map[string]interface{}) error {
	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	for k, v := range fields {
		updates[k] = v
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.PaymentIntent{}).
		Where("intent_id = ? AND status IN ?", intentID, statusStrings(from)).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.PaymentIntent{}).
			Where("intent_id = ?", intentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConflict
	}
	return nil
}

// PromoteStuckCreated promotes CREATED intents older than before to
// AWAITING_USER_TX. Idempotent: already-promoted rows are not matched.
func (r *PaymentIntentRepository) PromoteStuckCreated(ctx context.Context, before time.Time) (int64, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.PaymentIntent{}).
		Where("status = ? AND created_at < ?", string(entities.IntentStatusCreated), before).
		Updates(map[string]interface{}{
			"status":     string(entities.IntentStatusAwaitingUserTx),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *PaymentIntentRepository) toEntity(m *models.PaymentIntent) *entities.PaymentIntent {
	return &entities.PaymentIntent{
		ID:                 m.ID,
		IntentID:           m.IntentID,
		VendorID:           m.VendorID,
		ProductID:          m.ProductID,
		CustomerEmail:      null.StringFromPtr(m.CustomerEmail),
		SrcChainID:         m.SrcChainID,
		DestChainID:        m.DestChainID,
		AmountUSDCMinor:    m.AmountUSDCMinor,
		BridgeFeeUSDCMinor: m.BridgeFeeUSDCMinor,
		TotalUSDCMinor:     m.TotalUSDCMinor,
		Status:             entities.IntentStatus(m.Status),
		RouterAddress:      m.RouterAddress,
		RouterFunction:     m.RouterFunction,
		Calldata:           m.Calldata,
		SrcTxHash:          null.StringFromPtr(m.SrcTxHash),
		SettlementTxHash:   null.StringFromPtr(m.SettlementTxHash),
		SettlementChainID:  null.Int64FromPtr(m.SettlementChainID),
		SourceAddress:      null.StringFromPtr(m.SourceAddress),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func statusStrings(statuses []entities.IntentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
