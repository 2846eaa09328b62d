package usecases

import (
	"sort"

	"piaas.backend/internal/domain/entities"
)

// defaultChainConfigs is the static router deployment table. Fee bps are per
// source chain; gas limits feed the cost estimate.
var defaultChainConfigs = []entities.ChainConfig{
	{ChainID: 1, Name: "Ethereum", RouterAddress: "0x1234567890123456789012345678901234567890", USDCAddress: "0xA0b86a33E6C617Ad208c59E7c7f8C48e9b1b3B2c", GasLimit: 300000, BridgeFeeBps: 5},
	{ChainID: 8453, Name: "Base", RouterAddress: "0x2345678901234567890123456789012345678901", USDCAddress: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", GasLimit: 250000, BridgeFeeBps: 3},
	{ChainID: 84532, Name: "Base Sepolia", RouterAddress: "0x3456789012345678901234567890123456789012", USDCAddress: "0x036CbD53842c5426634e7929541eC2318f3dCF7e", GasLimit: 250000, BridgeFeeBps: 5},
	{ChainID: 10, Name: "Optimism", RouterAddress: "0x4567890123456789012345678901234567890123", USDCAddress: "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85", GasLimit: 200000, BridgeFeeBps: 4},
	{ChainID: 42161, Name: "Arbitrum", RouterAddress: "0x5678901234567890123456789012345678901234", USDCAddress: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", GasLimit: 180000, BridgeFeeBps: 3},
	{ChainID: 137, Name: "Polygon", RouterAddress: "0x6789012345678901234567890123456789012345", USDCAddress: "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", GasLimit: 150000, BridgeFeeBps: 6},
}

// ChainRegistry is an immutable in-memory lookup of supported chains. Built
// once at startup and shared by reference; it performs no I/O.
type ChainRegistry struct {
	configs map[int64]entities.ChainConfig
}

// NewChainRegistry creates a registry with the default deployment table
func NewChainRegistry() *ChainRegistry {
	return NewChainRegistryWith(defaultChainConfigs)
}

// NewChainRegistryWith creates a registry from an explicit config list
func NewChainRegistryWith(configs []entities.ChainConfig) *ChainRegistry {
	m := make(map[int64]entities.ChainConfig, len(configs))
	for _, c := range configs {
		m[c.ChainID] = c
	}
	return &ChainRegistry{configs: m}
}

// GetConfig returns the config for chainID, or false if unsupported
func (r *ChainRegistry) GetConfig(chainID int64) (*entities.ChainConfig, bool) {
	c, ok := r.configs[chainID]
	if !ok {
		return nil, false
	}
	return &c, true
}

// SupportedChains returns the supported chain IDs in ascending order
func (r *ChainRegistry) SupportedChains() []int64 {
	ids := make([]int64, 0, len(r.configs))
	for id := range r.configs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ValidatePair reports whether both chains are supported. Same-chain pairs
// are valid.
func (r *ChainRegistry) ValidatePair(src, dest int64) bool {
	_, srcOK := r.configs[src]
	_, destOK := r.configs[dest]
	return srcOK && destOK
}

// BridgeFee computes floor(amount * feeBps / 10000) for the source chain.
// Unknown chains yield 0; callers must reject them via ValidatePair first.
func (r *ChainRegistry) BridgeFee(amount, srcChainID int64) int64 {
	c, ok := r.configs[srcChainID]
	if !ok {
		return 0
	}
	return amount * c.BridgeFeeBps / 10000
}
