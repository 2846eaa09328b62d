package entities

// ChainConfig holds the static per-chain deployment parameters: the router
// contract, the USDC settlement token, the gas limit used for estimates and
// the bridge fee in basis points.
type ChainConfig struct {
	ChainID       int64  `json:"chainId"`
	Name          string `json:"name"`
	RouterAddress string `json:"routerAddress"`
	USDCAddress   string `json:"usdcAddress"`
	GasLimit      uint64 `json:"gasLimit"`
	BridgeFeeBps  int64  `json:"bridgeFeeBps"`
}

// CostEstimate is the fee breakdown for routing a payment between two chains.
// Amounts are USDC minor units (6 decimals).
type CostEstimate struct {
	GasLimit             uint64 `json:"gasLimit"`
	BridgeFeeUSDCMinor   int64  `json:"bridgeFeeUsdcMinor"`
	TotalAmountUSDCMinor int64  `json:"totalAmountUsdcMinor"`
}

// RouterPayload is the complete transaction payload a client signs and
// submits to the router contract on the source chain.
type RouterPayload struct {
	Address       string       `json:"address"`
	ChainID       int64        `json:"chainId"`
	Function      string       `json:"function"`
	Calldata      string       `json:"calldata"`
	GasLimit      uint64       `json:"gasLimit"`
	BridgeFee     int64        `json:"bridgeFee"`
	EstimatedCost CostEstimate `json:"estimatedCost"`
}
