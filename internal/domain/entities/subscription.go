package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SubscriptionStatus represents subscription status
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionStatusPaused    SubscriptionStatus = "PAUSED"
)

// BillingInterval represents how often a subscription renews
type BillingInterval string

const (
	BillingMonthly   BillingInterval = "monthly"
	BillingQuarterly BillingInterval = "quarterly"
	BillingYearly    BillingInterval = "yearly"
)

// NextRenewal returns the renewal time one billing period after from.
func (b BillingInterval) NextRenewal(from time.Time) time.Time {
	switch b {
	case BillingQuarterly:
		return from.AddDate(0, 3, 0)
	case BillingYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// Subscription represents a recurring billing agreement. Each renewal
// creates a fresh payment intent for the customer to pay.
type Subscription struct {
	ID              uuid.UUID          `json:"-"`
	SubscriptionID  string             `json:"subscriptionId"`
	VendorID        uuid.UUID          `json:"vendorId"`
	ProductID       uuid.UUID          `json:"productId"`
	PlanID          string             `json:"planId"`
	CustomerEmail   null.String        `json:"customerEmail,omitempty"`
	Status          SubscriptionStatus `json:"status"`
	SrcChainID      int64              `json:"srcChainId"`
	DestChainID     int64              `json:"destChainId"`
	BillingInterval BillingInterval    `json:"billingInterval"`
	AmountUSDCMinor int64              `json:"amountUsdcMinor"`
	NextRenewalAt   time.Time          `json:"nextRenewalAt"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// CreateSubscriptionInput represents input for creating a subscription
type CreateSubscriptionInput struct {
	VendorID        uuid.UUID
	ProductID       uuid.UUID
	PlanID          string
	CustomerEmail   string
	SrcChainID      int64
	DestChainID     int64
	BillingInterval BillingInterval
	AmountUSDCMinor int64
}
