package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// IntentStatus represents payment intent lifecycle status
type IntentStatus string

const (
	IntentStatusCreated        IntentStatus = "CREATED"
	IntentStatusAwaitingUserTx IntentStatus = "AWAITING_USER_TX"
	IntentStatusSubmitted      IntentStatus = "SUBMITTED"
	IntentStatusSettled        IntentStatus = "SETTLED"
	IntentStatusFailed         IntentStatus = "FAILED"
)

// PaymentIntent represents a payment intent entity. IntentID is the public
// identifier (pi_<hex>); ID is the storage key. Router fields are the
// payload snapshot captured at creation and never recomputed.
type PaymentIntent struct {
	ID                 uuid.UUID    `json:"-"`
	IntentID           string       `json:"intentId"`
	VendorID           uuid.UUID    `json:"vendorId"`
	ProductID          uuid.UUID    `json:"productId"`
	CustomerEmail      null.String  `json:"customerEmail,omitempty"`
	SrcChainID         int64        `json:"srcChainId"`
	DestChainID        int64        `json:"destChainId"`
	AmountUSDCMinor    int64        `json:"amountUsdcMinor"`
	BridgeFeeUSDCMinor int64        `json:"bridgeFeeUsdcMinor"`
	TotalUSDCMinor     int64        `json:"totalUsdcMinor"`
	Status             IntentStatus `json:"status"`
	RouterAddress      string       `json:"routerAddress"`
	RouterFunction     string       `json:"routerFunction"`
	Calldata           string       `json:"calldata"`
	SrcTxHash          null.String  `json:"srcTxHash,omitempty"`
	SettlementTxHash   null.String  `json:"settlementTxHash,omitempty"`
	SettlementChainID  null.Int64   `json:"settlementChainId,omitempty"`
	SourceAddress      null.String  `json:"sourceAddress,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// CreateIntentInput represents input for creating a payment intent
type CreateIntentInput struct {
	VendorID        uuid.UUID
	ProductID       uuid.UUID
	SrcChainID      int64
	DestChainID     int64
	AmountUSDCMinor *int64
	CustomerEmail   string
}

// CompleteIntentInput represents input for completing a payment intent
type CompleteIntentInput struct {
	IntentID      string
	TxHash        string
	Outcome       IntentStatus
	SrcChainID    int64
	SourceAddress string
}

// CreateIntentResponse pairs the persisted intent with the router payload
// the client must sign.
type CreateIntentResponse struct {
	Intent  *PaymentIntent `json:"intent"`
	Payload *RouterPayload `json:"payload"`
}
