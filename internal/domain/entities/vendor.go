package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Vendor represents a vendor (read-only here; vendor CRUD lives in a
// separate service). EnabledChains is the set of source chains the vendor
// accepts payments from.
type Vendor struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	WalletAddress string      `json:"walletAddress"`
	WebhookURL    null.String `json:"webhookUrl,omitempty"`
	EnabledChains []int64     `json:"enabledChains"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// EnablesChain reports whether the vendor accepts payments from chainID.
func (v *Vendor) EnablesChain(chainID int64) bool {
	for _, c := range v.EnabledChains {
		if c == chainID {
			return true
		}
	}
	return false
}

// Product represents a vendor's product. PriceUSDCMinor is the default
// charge when an intent is created without an explicit amount.
type Product struct {
	ID             uuid.UUID  `json:"id"`
	VendorID       uuid.UUID  `json:"vendorId"`
	Name           string     `json:"name"`
	PriceUSDCMinor null.Int64 `json:"priceUsdcMinor,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
