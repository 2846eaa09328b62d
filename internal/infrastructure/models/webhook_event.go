package models

import (
	"time"

	"github.com/google/uuid"
)

type WebhookEvent struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	VendorID       uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType      string    `gorm:"type:varchar(100);not null;index"`
	Payload        string    `gorm:"type:text;not null"`
	WebhookURL     string    `gorm:"type:varchar(1024);not null"`
	Status         string    `gorm:"type:varchar(50);not null;index"`
	Attempts       int       `gorm:"not null;default:0"`
	MaxAttempts    int       `gorm:"not null"`
	NextRetryAt    *time.Time `gorm:"index"`
	LastAttemptAt  *time.Time
	ResponseStatus *int
	ResponseBody   *string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}

type Subscription struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SubscriptionID  string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	VendorID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null"`
	PlanID          string    `gorm:"type:varchar(100);not null"`
	CustomerEmail   *string   `gorm:"type:varchar(255)"`
	Status          string    `gorm:"type:varchar(50);not null;index"`
	SrcChainID      int64     `gorm:"not null"`
	DestChainID     int64     `gorm:"not null"`
	BillingInterval string    `gorm:"type:varchar(20);not null"`
	AmountUSDCMinor int64     `gorm:"column:amount_usdc_minor;not null"`
	NextRenewalAt   time.Time `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Subscription) TableName() string {
	return "subscriptions"
}
