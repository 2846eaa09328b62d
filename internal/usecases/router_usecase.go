package usecases

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"piaas.backend/internal/domain/entities"
	domainerrors "piaas.backend/internal/domain/errors"
)

// Bytes32Hasher digests a free-form payment identifier into the bytes32
// word the router contract expects. Injectable because the deployed
// verifier's digest algorithm is not pinned by the ABI.
type Bytes32Hasher func(data []byte) [32]byte

// BuildPaymentInput are the validated parameters for one router call
type BuildPaymentInput struct {
	Recipient       string
	AmountUSDCMinor int64
	SrcChainID      int64
	DestChainID     int64
	PaymentID       string
	BridgeAddress   string // cross-chain only; empty means unset
}

// RouterUsecase produces router contract payloads. Encoding is pure: the
// same input always yields the same calldata.
type RouterUsecase struct {
	registry *ChainRegistry
	hashID   Bytes32Hasher
}

// NewRouterUsecase creates a router usecase with the SHA-256 bytes32 digest
func NewRouterUsecase(registry *ChainRegistry) *RouterUsecase {
	return &RouterUsecase{
		registry: registry,
		hashID:   sha256.Sum256,
	}
}

// SetBytes32Hasher overrides the payment id digest
func (u *RouterUsecase) SetBytes32Hasher(h Bytes32Hasher) {
	u.hashID = h
}

// BuildPayload generates the router address, function and calldata for a
// payment. Same-chain payments use createPayment; cross-chain ones use
// bridgePayment with the source chain's fee applied on top of the amount.
func (u *RouterUsecase) BuildPayload(in BuildPaymentInput) (*entities.RouterPayload, error) {
	srcCfg, ok := u.registry.GetConfig(in.SrcChainID)
	if !ok {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unsupported source chain: %d", in.SrcChainID))
	}
	if !u.registry.ValidatePair(in.SrcChainID, in.DestChainID) {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unsupported chain pair: %d -> %d", in.SrcChainID, in.DestChainID))
	}
	if !common.IsHexAddress(in.Recipient) {
		return nil, domainerrors.BadRequest("invalid recipient address")
	}
	if in.AmountUSDCMinor <= 0 {
		return nil, domainerrors.BadRequest("amount must be positive")
	}

	var (
		function  string
		calldata  string
		bridgeFee int64
	)
	if in.SrcChainID == in.DestChainID {
		function = FunctionCreatePayment
		calldata = u.encodeCreatePayment(in)
	} else {
		function = FunctionBridgePayment
		bridgeFee = u.registry.BridgeFee(in.AmountUSDCMinor, in.SrcChainID)
		calldata = u.encodeBridgePayment(in)
	}

	return &entities.RouterPayload{
		Address:   srcCfg.RouterAddress,
		ChainID:   in.SrcChainID,
		Function:  function,
		Calldata:  calldata,
		GasLimit:  srcCfg.GasLimit,
		BridgeFee: bridgeFee,
		EstimatedCost: entities.CostEstimate{
			GasLimit:             srcCfg.GasLimit,
			BridgeFeeUSDCMinor:   bridgeFee,
			TotalAmountUSDCMinor: in.AmountUSDCMinor + bridgeFee,
		},
	}, nil
}

func (u *RouterUsecase) encodeCreatePayment(in BuildPaymentInput) string {
	return CreatePaymentSelector +
		encodeAddressWord(in.Recipient) +
		encodeUintWord(in.AmountUSDCMinor) +
		encodeUintWord(in.SrcChainID) +
		encodeUintWord(in.DestChainID) +
		u.encodeBytes32Word(in.PaymentID)
}

func (u *RouterUsecase) encodeBridgePayment(in BuildPaymentInput) string {
	bridge := in.BridgeAddress
	if bridge == "" {
		bridge = "0x0"
	}
	return BridgePaymentSelector +
		encodeAddressWord(in.Recipient) +
		encodeUintWord(in.AmountUSDCMinor) +
		encodeUintWord(in.SrcChainID) +
		encodeUintWord(in.DestChainID) +
		encodeAddressWord(bridge) +
		u.encodeBytes32Word(in.PaymentID)
}

// encodeAddressWord left-pads a hex address to a 32-byte word
func encodeAddressWord(address string) string {
	hexPart := strings.TrimPrefix(strings.ToLower(address), "0x")
	return padLeft(hexPart, EVMWordSizeHex)
}

// encodeUintWord encodes an integer as a 32-byte big-endian word
func encodeUintWord(v int64) string {
	return fmt.Sprintf("%064x", v)
}

// encodeBytes32Word passes 64-hex-char identifiers through verbatim
// (lowercased); anything else is digested over its UTF-8 bytes.
func (u *RouterUsecase) encodeBytes32Word(value string) string {
	v := strings.TrimPrefix(value, "0x")
	if len(v) == EVMWordSizeHex {
		return strings.ToLower(v)
	}
	digest := u.hashID([]byte(v))
	return fmt.Sprintf("%x", digest)
}

// EstimateResult is the fee/gas breakdown for a prospective payment
type EstimateResult struct {
	SrcChainName       string `json:"srcChainName"`
	DestChainName      string `json:"destChainName"`
	GasLimit           uint64 `json:"gasLimit"`
	BridgeFeeBps       int64  `json:"bridgeFeeBps"`
	BridgeFeeUSDCMinor int64  `json:"bridgeFeeUsdcMinor"`
	TotalUSDCMinor     int64  `json:"totalUsdcMinor"`
	IsCrossChain       bool   `json:"isCrossChain"`
}

// Estimate returns the cost breakdown for a (src, dest, amount) triple
func (u *RouterUsecase) Estimate(srcChainID, destChainID, amountUSDCMinor int64) (*EstimateResult, error) {
	srcCfg, ok := u.registry.GetConfig(srcChainID)
	if !ok {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unsupported source chain: %d", srcChainID))
	}
	destCfg, ok := u.registry.GetConfig(destChainID)
	if !ok {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unsupported destination chain: %d", destChainID))
	}
	if amountUSDCMinor <= 0 {
		return nil, domainerrors.BadRequest("amount must be positive")
	}

	var bridgeFee int64
	if srcChainID != destChainID {
		bridgeFee = u.registry.BridgeFee(amountUSDCMinor, srcChainID)
	}

	return &EstimateResult{
		SrcChainName:       srcCfg.Name,
		DestChainName:      destCfg.Name,
		GasLimit:           srcCfg.GasLimit,
		BridgeFeeBps:       srcCfg.BridgeFeeBps,
		BridgeFeeUSDCMinor: bridgeFee,
		TotalUSDCMinor:     amountUSDCMinor + bridgeFee,
		IsCrossChain:       srcChainID != destChainID,
	}, nil
}
