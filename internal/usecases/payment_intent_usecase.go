package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"piaas.backend/internal/domain/entities"
	domainerrors "piaas.backend/internal/domain/errors"
	"piaas.backend/internal/domain/repositories"
	"piaas.backend/pkg/logger"
	"piaas.backend/pkg/metrics"
	"piaas.backend/pkg/utils"
)

// WebhookEnqueuer enqueues a webhook event for a vendor. Implementations
// must never fail the calling domain operation on delivery problems.
type WebhookEnqueuer interface {
	Enqueue(ctx context.Context, vendorID uuid.UUID, eventType string, payload map[string]interface{}) error
}

// PaymentIntentUsecase drives the payment intent lifecycle
type PaymentIntentUsecase struct {
	intentRepo repositories.PaymentIntentRepository
	vendorRepo repositories.VendorRepository
	router     *RouterUsecase
	registry   *ChainRegistry
	webhooks   WebhookEnqueuer
}

// NewPaymentIntentUsecase creates a new payment intent usecase
func NewPaymentIntentUsecase(
	intentRepo repositories.PaymentIntentRepository,
	vendorRepo repositories.VendorRepository,
	router *RouterUsecase,
	registry *ChainRegistry,
	webhooks WebhookEnqueuer,
) *PaymentIntentUsecase {
	return &PaymentIntentUsecase{
		intentRepo: intentRepo,
		vendorRepo: vendorRepo,
		router:     router,
		registry:   registry,
		webhooks:   webhooks,
	}
}

// CreateIntent validates the request, generates the router payload, persists
// the intent and promotes it to AWAITING_USER_TX. The insert and the
// promotion are separate writes; the recovery job heals rows stranded in
// CREATED by a crash between the two.
func (u *PaymentIntentUsecase) CreateIntent(ctx context.Context, input entities.CreateIntentInput) (*entities.CreateIntentResponse, error) {
	vendor, err := u.vendorRepo.GetByID(ctx, input.VendorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("vendor not found")
		}
		return nil, err
	}

	product, err := u.vendorRepo.GetProductByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("product not found")
		}
		return nil, err
	}
	if product.VendorID != vendor.ID {
		return nil, domainerrors.NotFound("product not found")
	}

	amount := int64(0)
	if input.AmountUSDCMinor != nil {
		amount = *input.AmountUSDCMinor
	} else {
		if !product.PriceUSDCMinor.Valid {
			return nil, domainerrors.BadRequest("amount required: product has no default price")
		}
		amount = product.PriceUSDCMinor.Int64
	}
	if amount <= 0 {
		return nil, domainerrors.BadRequest("amount must be positive")
	}

	if !vendor.EnablesChain(input.SrcChainID) {
		return nil, domainerrors.BadRequest(fmt.Sprintf("source chain %d not enabled for vendor", input.SrcChainID))
	}
	if !u.registry.ValidatePair(input.SrcChainID, input.DestChainID) {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unsupported chain pair: %d -> %d", input.SrcChainID, input.DestChainID))
	}

	intentID := utils.NewIntentID()
	payload, err := u.router.BuildPayload(BuildPaymentInput{
		Recipient:       vendor.WalletAddress,
		AmountUSDCMinor: amount,
		SrcChainID:      input.SrcChainID,
		DestChainID:     input.DestChainID,
		PaymentID:       intentID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	intent := &entities.PaymentIntent{
		ID:                 uuid.New(),
		IntentID:           intentID,
		VendorID:           vendor.ID,
		ProductID:          product.ID,
		SrcChainID:         input.SrcChainID,
		DestChainID:        input.DestChainID,
		AmountUSDCMinor:    amount,
		BridgeFeeUSDCMinor: payload.BridgeFee,
		TotalUSDCMinor:     amount + payload.BridgeFee,
		Status:             entities.IntentStatusCreated,
		RouterAddress:      payload.Address,
		RouterFunction:     payload.Function,
		Calldata:           payload.Calldata,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if input.CustomerEmail != "" {
		intent.CustomerEmail = null.StringFrom(input.CustomerEmail)
	}

	if err := u.intentRepo.Create(ctx, intent); err != nil {
		return nil, err
	}
	metrics.IntentsCreated.WithLabelValues(fmt.Sprintf("%d", input.SrcChainID)).Inc()

	if err := u.transition(ctx, intentID,
		[]entities.IntentStatus{entities.IntentStatusCreated},
		entities.IntentStatusAwaitingUserTx, nil); err != nil {
		return nil, err
	}
	intent.Status = entities.IntentStatusAwaitingUserTx

	u.notify(ctx, vendor.ID, entities.EventIntentCreated, map[string]interface{}{
		"intent_id":             intent.IntentID,
		"vendor_id":             vendor.ID.String(),
		"product_id":            product.ID.String(),
		"amount_usdc_minor":     intent.AmountUSDCMinor,
		"bridge_fee_usdc_minor": intent.BridgeFeeUSDCMinor,
		"total_usdc_minor":      intent.TotalUSDCMinor,
		"src_chain_id":          intent.SrcChainID,
		"dest_chain_id":         intent.DestChainID,
		"status":                string(intent.Status),
	})

	return &entities.CreateIntentResponse{Intent: intent, Payload: payload}, nil
}

// ReportSourceTx records the user's source chain transaction hash,
// moving AWAITING_USER_TX to SUBMITTED.
func (u *PaymentIntentUsecase) ReportSourceTx(ctx context.Context, intentID, txHash string) (*entities.PaymentIntent, error) {
	if txHash == "" {
		return nil, domainerrors.BadRequest("tx_hash is required")
	}

	if err := u.transition(ctx, intentID,
		[]entities.IntentStatus{entities.IntentStatusAwaitingUserTx},
		entities.IntentStatusSubmitted,
		map[string]interface{}{"src_tx_hash": txHash}); err != nil {
		return nil, err
	}

	intent, err := u.GetIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	u.notify(ctx, intent.VendorID, entities.EventIntentSubmitted, map[string]interface{}{
		"intent_id":   intent.IntentID,
		"vendor_id":   intent.VendorID.String(),
		"src_tx_hash": txHash,
		"status":      string(intent.Status),
	})
	return intent, nil
}

// CompleteTransaction records the settlement outcome. Legal from SUBMITTED,
// CREATED and FAILED (failed intents may be retried). SETTLED emits a
// webhook; FAILED records the diagnostics silently.
func (u *PaymentIntentUsecase) CompleteTransaction(ctx context.Context, input entities.CompleteIntentInput) (*entities.PaymentIntent, error) {
	if input.Outcome != entities.IntentStatusSettled && input.Outcome != entities.IntentStatusFailed {
		return nil, domainerrors.BadRequest(fmt.Sprintf("invalid outcome: %s", input.Outcome))
	}
	if input.TxHash == "" {
		return nil, domainerrors.BadRequest("tx_hash is required")
	}

	fields := map[string]interface{}{
		"settlement_tx_hash":  input.TxHash,
		"settlement_chain_id": input.SrcChainID,
	}
	if input.SourceAddress != "" {
		fields["source_address"] = input.SourceAddress
	}

	if err := u.transition(ctx, input.IntentID,
		[]entities.IntentStatus{entities.IntentStatusSubmitted, entities.IntentStatusCreated, entities.IntentStatusFailed},
		input.Outcome, fields); err != nil {
		return nil, err
	}

	intent, err := u.GetIntent(ctx, input.IntentID)
	if err != nil {
		return nil, err
	}

	if input.Outcome == entities.IntentStatusSettled {
		u.notify(ctx, intent.VendorID, entities.EventIntentSettled, map[string]interface{}{
			"intent_id":         intent.IntentID,
			"vendor_id":         intent.VendorID.String(),
			"tx_hash":           input.TxHash,
			"src_chain_id":      input.SrcChainID,
			"amount_usdc_minor": intent.AmountUSDCMinor,
			"status":            string(intent.Status),
		})
	}
	return intent, nil
}

// GetIntent gets a payment intent by its public identifier
func (u *PaymentIntentUsecase) GetIntent(ctx context.Context, intentID string) (*entities.PaymentIntent, error) {
	intent, err := u.intentRepo.GetByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("payment intent not found")
		}
		return nil, err
	}
	return intent, nil
}

// transition wraps the conditional repository update with error mapping and
// the transition metric.
func (u *PaymentIntentUsecase) transition(ctx context.Context, intentID string, from []entities.IntentStatus, to entities.IntentStatus, fields map[string]interface{}) error {
	err := u.intentRepo.Transition(ctx, intentID, from, to, fields)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("payment intent not found")
		}
		if errors.Is(err, domainerrors.ErrConflict) {
			return domainerrors.Conflict(fmt.Sprintf("intent %s cannot transition to %s", intentID, to))
		}
		return err
	}
	metrics.IntentTransitions.WithLabelValues(transitionLabel(from), string(to)).Inc()
	return nil
}

func transitionLabel(from []entities.IntentStatus) string {
	if len(from) == 1 {
		return string(from[0])
	}
	return "ANY"
}

// notify enqueues a webhook; delivery problems never surface to the caller
func (u *PaymentIntentUsecase) notify(ctx context.Context, vendorID uuid.UUID, eventType string, payload map[string]interface{}) {
	payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if err := u.webhooks.Enqueue(ctx, vendorID, eventType, payload); err != nil {
		logger.Warn(ctx, "webhook enqueue failed",
			zap.String("event_type", eventType),
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err))
	}
}
