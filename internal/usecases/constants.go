package usecases

import (
	"encoding/hex"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
)

// computeSelectorHex computes the 4-byte EVM function selector from a canonical
// function signature and returns it as a "0x"-prefixed hex string.
func computeSelectorHex(sig string) string {
	return "0x" + hex.EncodeToString(crypto.Keccak256([]byte(sig))[:4])
}

// Router function selectors, computed at init from canonical signatures.
var (
	CreatePaymentSelector = computeSelectorHex("createPayment(address,uint256,uint32,uint32,bytes32)")
	BridgePaymentSelector = computeSelectorHex("bridgePayment(address,uint256,uint32,uint32,address,bytes32)")
	BatchPaymentSelector  = computeSelectorHex("batchPayment(address[],uint256[],uint32,uint32,bytes32)")
)

// Router function names
const (
	FunctionCreatePayment = "createPayment"
	FunctionBridgePayment = "bridgePayment"
	FunctionBatchPayment  = "batchPayment"
)

// Webhook delivery defaults
const (
	DefaultWebhookMaxAttempts = 3
	DefaultWebhookBaseDelay   = 2 * time.Second
	DefaultWebhookTimeout     = 30 * time.Second
	MaxWebhookRetryDelay      = 3600 * time.Second
	MaxResponseBodyLen        = 1000
)

// WebhookUserAgent identifies outbound webhook requests
const WebhookUserAgent = "PIaaS-Webhooks"

// EVM Technical Constants
const EVMWordSize = 32
const EVMWordSizeHex = 64
