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

// SubscriptionUsecase manages recurring billing agreements. Renewals reuse
// the payment intent path, so every cycle produces a signable router payload.
type SubscriptionUsecase struct {
	subRepo    repositories.SubscriptionRepository
	vendorRepo repositories.VendorRepository
	intents    *PaymentIntentUsecase
	registry   *ChainRegistry
	webhooks   WebhookEnqueuer
	uow        repositories.UnitOfWork
}

// NewSubscriptionUsecase creates a new subscription usecase
func NewSubscriptionUsecase(
	subRepo repositories.SubscriptionRepository,
	vendorRepo repositories.VendorRepository,
	intents *PaymentIntentUsecase,
	registry *ChainRegistry,
	webhooks WebhookEnqueuer,
	uow repositories.UnitOfWork,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		subRepo:    subRepo,
		vendorRepo: vendorRepo,
		intents:    intents,
		registry:   registry,
		webhooks:   webhooks,
		uow:        uow,
	}
}

// CreateSubscription validates the vendor, product and chain pair, then
// persists an ACTIVE subscription with its first renewal one billing period
// out.
func (u *SubscriptionUsecase) CreateSubscription(ctx context.Context, input entities.CreateSubscriptionInput) (*entities.Subscription, error) {
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

	switch input.BillingInterval {
	case entities.BillingMonthly, entities.BillingQuarterly, entities.BillingYearly:
	default:
		return nil, domainerrors.BadRequest(fmt.Sprintf("invalid billing interval: %s", input.BillingInterval))
	}

	amount := input.AmountUSDCMinor
	if amount == 0 && product.PriceUSDCMinor.Valid {
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

	now := time.Now()
	sub := &entities.Subscription{
		ID:              uuid.New(),
		SubscriptionID:  utils.NewSubscriptionID(),
		VendorID:        vendor.ID,
		ProductID:       product.ID,
		PlanID:          input.PlanID,
		Status:          entities.SubscriptionStatusActive,
		SrcChainID:      input.SrcChainID,
		DestChainID:     input.DestChainID,
		BillingInterval: input.BillingInterval,
		AmountUSDCMinor: amount,
		NextRenewalAt:   input.BillingInterval.NextRenewal(now),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.CustomerEmail != "" {
		sub.CustomerEmail = null.StringFrom(input.CustomerEmail)
	}

	if err := u.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// GetSubscription gets a subscription by its public identifier
func (u *SubscriptionUsecase) GetSubscription(ctx context.Context, subscriptionID string) (*entities.Subscription, error) {
	sub, err := u.subRepo.GetBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("subscription not found")
		}
		return nil, err
	}
	return sub, nil
}

// RenewSubscription creates the next cycle's payment intent and advances the
// renewal clock. Active subscriptions only. The renewal advance and the
// intent creation run inside one transaction.
func (u *SubscriptionUsecase) RenewSubscription(ctx context.Context, subscriptionID string) (*entities.CreateIntentResponse, error) {
	sub, err := u.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != entities.SubscriptionStatusActive {
		metrics.SubscriptionRenewals.WithLabelValues("rejected").Inc()
		return nil, domainerrors.Conflict(fmt.Sprintf("subscription %s is %s", subscriptionID, sub.Status))
	}

	amount := sub.AmountUSDCMinor
	var resp *entities.CreateIntentResponse
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		resp, err = u.intents.CreateIntent(txCtx, entities.CreateIntentInput{
			VendorID:        sub.VendorID,
			ProductID:       sub.ProductID,
			SrcChainID:      sub.SrcChainID,
			DestChainID:     sub.DestChainID,
			AmountUSDCMinor: &amount,
			CustomerEmail:   sub.CustomerEmail.String,
		})
		if err != nil {
			return err
		}
		return u.subRepo.AdvanceRenewal(txCtx, sub.SubscriptionID, sub.BillingInterval.NextRenewal(sub.NextRenewalAt))
	})
	if err != nil {
		metrics.SubscriptionRenewals.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.SubscriptionRenewals.WithLabelValues("renewed").Inc()

	u.notifyRenewed(ctx, sub, resp.Intent)
	return resp, nil
}

// CancelSubscription marks a subscription CANCELLED
func (u *SubscriptionUsecase) CancelSubscription(ctx context.Context, subscriptionID string) (*entities.Subscription, error) {
	sub, err := u.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status == entities.SubscriptionStatusCancelled {
		return sub, nil
	}
	if err := u.subRepo.UpdateStatus(ctx, subscriptionID, entities.SubscriptionStatusCancelled); err != nil {
		return nil, err
	}
	sub.Status = entities.SubscriptionStatusCancelled
	return sub, nil
}

// RenewDue renews every ACTIVE subscription whose renewal time has passed.
// Returns the number renewed; individual failures are logged and skipped.
func (u *SubscriptionUsecase) RenewDue(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := u.subRepo.GetDue(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	renewed := 0
	for _, sub := range due {
		if _, err := u.RenewSubscription(ctx, sub.SubscriptionID); err != nil {
			logger.Warn(ctx, "subscription renewal failed",
				zap.String("subscription_id", sub.SubscriptionID), zap.Error(err))
			continue
		}
		renewed++
	}
	return renewed, nil
}

func (u *SubscriptionUsecase) notifyRenewed(ctx context.Context, sub *entities.Subscription, intent *entities.PaymentIntent) {
	payload := map[string]interface{}{
		"subscription_id":   sub.SubscriptionID,
		"vendor_id":         sub.VendorID.String(),
		"plan_id":           sub.PlanID,
		"intent_id":         intent.IntentID,
		"amount_usdc_minor": intent.AmountUSDCMinor,
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	}
	if err := u.webhooks.Enqueue(ctx, sub.VendorID, entities.EventSubscriptionRenewed, payload); err != nil {
		logger.Warn(ctx, "webhook enqueue failed",
			zap.String("event_type", entities.EventSubscriptionRenewed),
			zap.String("subscription_id", sub.SubscriptionID),
			zap.Error(err))
	}
}
