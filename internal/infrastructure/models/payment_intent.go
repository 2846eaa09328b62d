package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentIntent struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	IntentID           string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	VendorID           uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID `gorm:"type:uuid;not null"`
	CustomerEmail      *string   `gorm:"type:varchar(255)"`
	SrcChainID         int64     `gorm:"not null"`
	DestChainID        int64     `gorm:"not null"`
	AmountUSDCMinor    int64     `gorm:"column:amount_usdc_minor;not null"`
	BridgeFeeUSDCMinor int64     `gorm:"column:bridge_fee_usdc_minor;not null;default:0"`
	TotalUSDCMinor     int64     `gorm:"column:total_usdc_minor;not null"`
	Status             string    `gorm:"type:varchar(50);not null;index"`
	RouterAddress      string    `gorm:"type:varchar(255);not null"`
	RouterFunction     string    `gorm:"type:varchar(100);not null"`
	Calldata           string    `gorm:"type:text;not null"`
	SrcTxHash          *string   `gorm:"type:varchar(255);index"`
	SettlementTxHash   *string   `gorm:"type:varchar(255)"`
	SettlementChainID  *int64
	SourceAddress      *string `gorm:"type:varchar(255)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (PaymentIntent) TableName() string {
	return "payment_intents"
}

type Vendor struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	WalletAddress string    `gorm:"type:varchar(255);not null"`
	WebhookURL    *string   `gorm:"type:varchar(1024)"`
	EnabledChains string    `gorm:"type:text;not null;default:''"` // comma-separated chain ids
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Vendor) TableName() string {
	return "vendors"
}

type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	VendorID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	PriceUSDCMinor *int64    `gorm:"column:price_usdc_minor"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
