package usecases

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "piaas.backend/internal/domain/errors"
)

const testRecipient = "0xAbCd567890123456789012345678901234567890"

func TestRouterUsecase_BuildPayload_SameChain(t *testing.T) {
	u := NewRouterUsecase(NewChainRegistry())

	payload, err := u.BuildPayload(BuildPaymentInput{
		Recipient:       testRecipient,
		AmountUSDCMinor: 990000,
		SrcChainID:      84532,
		DestChainID:     84532,
		PaymentID:       "pi_0123456789ab",
	})
	require.NoError(t, err)

	assert.Equal(t, "0x3456789012345678901234567890123456789012", payload.Address)
	assert.Equal(t, int64(84532), payload.ChainID)
	assert.Equal(t, FunctionCreatePayment, payload.Function)
	assert.Equal(t, uint64(250000), payload.GasLimit)
	assert.Equal(t, int64(0), payload.BridgeFee)
	assert.Equal(t, int64(990000), payload.EstimatedCost.TotalAmountUSDCMinor)

	require.True(t, strings.HasPrefix(payload.Calldata, CreatePaymentSelector))
	assert.Len(t, payload.Calldata, len(CreatePaymentSelector)+5*EVMWordSizeHex)

	words := payload.Calldata[len(CreatePaymentSelector):]
	assert.Equal(t, padLeft(strings.ToLower(testRecipient[2:]), EVMWordSizeHex), words[:64])
	assert.Equal(t, fmt.Sprintf("%064x", 990000), words[64:128])
	assert.Equal(t, fmt.Sprintf("%064x", 84532), words[128:192])
	assert.Equal(t, fmt.Sprintf("%064x", 84532), words[192:256])

	digest := sha256.Sum256([]byte("pi_0123456789ab"))
	assert.Equal(t, fmt.Sprintf("%x", digest), words[256:320])
}

func TestRouterUsecase_BuildPayload_CrossChain(t *testing.T) {
	u := NewRouterUsecase(NewChainRegistry())

	payload, err := u.BuildPayload(BuildPaymentInput{
		Recipient:       testRecipient,
		AmountUSDCMinor: 990000,
		SrcChainID:      84532,
		DestChainID:     8453,
		PaymentID:       "pi_0123456789ab",
	})
	require.NoError(t, err)

	assert.Equal(t, FunctionBridgePayment, payload.Function)
	assert.Equal(t, int64(495), payload.BridgeFee)
	assert.Equal(t, int64(495), payload.EstimatedCost.BridgeFeeUSDCMinor)
	assert.Equal(t, int64(990495), payload.EstimatedCost.TotalAmountUSDCMinor)

	require.True(t, strings.HasPrefix(payload.Calldata, BridgePaymentSelector))
	assert.Len(t, payload.Calldata, len(BridgePaymentSelector)+6*EVMWordSizeHex)

	// bridge address defaults to the zero word when unset
	words := payload.Calldata[len(BridgePaymentSelector):]
	assert.Equal(t, strings.Repeat("0", EVMWordSizeHex), words[256:320])
}

func TestRouterUsecase_BuildPayload_ExplicitBridgeAddress(t *testing.T) {
	u := NewRouterUsecase(NewChainRegistry())

	payload, err := u.BuildPayload(BuildPaymentInput{
		Recipient:       testRecipient,
		AmountUSDCMinor: 100,
		SrcChainID:      1,
		DestChainID:     10,
		PaymentID:       "pi_aaaabbbbcccc",
		BridgeAddress:   "0xFFfF567890123456789012345678901234567890",
	})
	require.NoError(t, err)

	words := payload.Calldata[len(BridgePaymentSelector):]
	assert.Equal(t, padLeft("ffff567890123456789012345678901234567890", EVMWordSizeHex), words[256:320])
}

func TestRouterUsecase_BuildPayload_Deterministic(t *testing.T) {
	u := NewRouterUsecase(NewChainRegistry())

	in := BuildPaymentInput{
		Recipient:       testRecipient,
		AmountUSDCMinor: 123456,
		SrcChainID:      1,
		DestChainID:     137,
		PaymentID:       "pi_deadbeef0001",
	}
	first, err := u.BuildPayload(in)
	require.NoError(t, err)
	second, err := u.BuildPayload(in)
	require.NoError(t, err)
	assert.Equal(t, first.Calldata, second.Calldata)
	assert.Equal(t, *first, *second)
}

func TestRouterUsecase_BuildPayload_Validation(t *testing.T) {
	u := NewRouterUsecase(NewChainRegistry())

	tests := []struct {
		name string
		in   BuildPaymentInput
	}{
		{"unknown source chain", BuildPaymentInput{Recipient: testRecipient, AmountUSDCMinor: 100, SrcChainID: 999999, DestChainID: 1, PaymentID: "pi_x"}},
		{"unknown destination chain", BuildPaymentInput{Recipient: testRecipient, AmountUSDCMinor: 100, SrcChainID: 1, DestChainID: 999999, PaymentID: "pi_x"}},
		{"bad recipient", BuildPaymentInput{Recipient: "not-an-address", AmountUSDCMinor: 100, SrcChainID: 1, DestChainID: 1, PaymentID: "pi_x"}},
		{"zero amount", BuildPaymentInput{Recipient: testRecipient, AmountUSDCMinor: 0, SrcChainID: 1, DestChainID: 1, PaymentID: "pi_x"}},
		{"negative amount", BuildPaymentInput{Recipient: testRecipient, AmountUSDCMinor: -5, SrcChainID: 1, DestChainID: 1, PaymentID: "pi_x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.BuildPayload(tt.in)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
		})
	}
}

func TestRouterUsecase_EncodeBytes32Word(t *testing.T) {
	u := NewRouterUsecase(NewChainRegistry())

	// 64 hex chars pass through verbatim, lowercased
	passthrough := "ABCDEF0000000000000000000000000000000000000000000000000000000001"
	assert.Equal(t, strings.ToLower(passthrough), u.encodeBytes32Word(passthrough))
	assert.Equal(t, strings.ToLower(passthrough), u.encodeBytes32Word("0x"+passthrough))

	// anything else is digested
	digest := sha256.Sum256([]byte("pi_0123456789ab"))
	assert.Equal(t, fmt.Sprintf("%x", digest), u.encodeBytes32Word("pi_0123456789ab"))
	assert.Len(t, u.encodeBytes32Word("short"), EVMWordSizeHex)
}

func TestRouterUsecase_SetBytes32Hasher(t *testing.T) {
	u := NewRouterUsecase(NewChainRegistry())
	u.SetBytes32Hasher(func(data []byte) [32]byte {
		var out [32]byte
		copy(out[:], data)
		return out
	})

	got := u.encodeBytes32Word("pi_x")
	raw, err := hex.DecodeString(got)
	require.NoError(t, err)
	assert.Equal(t, "pi_x", string(raw[:4]))
}

func TestRouterUsecase_Estimate(t *testing.T) {
	u := NewRouterUsecase(NewChainRegistry())

	est, err := u.Estimate(84532, 8453, 990000)
	require.NoError(t, err)
	assert.Equal(t, "Base Sepolia", est.SrcChainName)
	assert.Equal(t, "Base", est.DestChainName)
	assert.Equal(t, uint64(250000), est.GasLimit)
	assert.Equal(t, int64(5), est.BridgeFeeBps)
	assert.Equal(t, int64(495), est.BridgeFeeUSDCMinor)
	assert.Equal(t, int64(990495), est.TotalUSDCMinor)
	assert.True(t, est.IsCrossChain)

	same, err := u.Estimate(1, 1, 1000000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), same.BridgeFeeUSDCMinor)
	assert.Equal(t, int64(1000000), same.TotalUSDCMinor)
	assert.False(t, same.IsCrossChain)

	_, err = u.Estimate(999999, 1, 100)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	_, err = u.Estimate(1, 999999, 100)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	_, err = u.Estimate(1, 1, 0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestSelectors(t *testing.T) {
	assert.Len(t, CreatePaymentSelector, 10)
	assert.Len(t, BridgePaymentSelector, 10)
	assert.Len(t, BatchPaymentSelector, 10)
	assert.True(t, strings.HasPrefix(CreatePaymentSelector, "0x"))
	assert.NotEqual(t, CreatePaymentSelector, BridgePaymentSelector)
}
