package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainRegistry_GetConfig(t *testing.T) {
	r := NewChainRegistry()

	cfg, ok := r.GetConfig(8453)
	require.True(t, ok)
	assert.Equal(t, "Base", cfg.Name)
	assert.Equal(t, "0x2345678901234567890123456789012345678901", cfg.RouterAddress)
	assert.Equal(t, "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", cfg.USDCAddress)
	assert.Equal(t, uint64(250000), cfg.GasLimit)
	assert.Equal(t, int64(3), cfg.BridgeFeeBps)

	_, ok = r.GetConfig(999999)
	assert.False(t, ok)
}

func TestChainRegistry_GetConfigReturnsCopy(t *testing.T) {
	r := NewChainRegistry()

	cfg, ok := r.GetConfig(1)
	require.True(t, ok)
	cfg.GasLimit = 1

	again, ok := r.GetConfig(1)
	require.True(t, ok)
	assert.Equal(t, uint64(300000), again.GasLimit)
}

func TestChainRegistry_SupportedChains(t *testing.T) {
	r := NewChainRegistry()

	ids := r.SupportedChains()
	require.Len(t, ids, 6)
	assert.Equal(t, []int64{1, 10, 137, 8453, 42161, 84532}, ids)
}

func TestChainRegistry_ValidatePair(t *testing.T) {
	r := NewChainRegistry()

	assert.True(t, r.ValidatePair(1, 8453))
	assert.True(t, r.ValidatePair(8453, 8453))
	assert.False(t, r.ValidatePair(1, 999999))
	assert.False(t, r.ValidatePair(999999, 1))
	assert.False(t, r.ValidatePair(999998, 999999))
}

func TestChainRegistry_BridgeFee(t *testing.T) {
	r := NewChainRegistry()

	tests := []struct {
		name    string
		amount  int64
		chainID int64
		want    int64
	}{
		{"base sepolia 5 bps", 990000, 84532, 495},
		{"base 3 bps", 1000000, 8453, 300},
		{"polygon 6 bps", 1000000, 137, 600},
		{"floor division", 999, 1, 0},
		{"rounds down", 10001, 84532, 5},
		{"unknown chain", 1000000, 999999, 0},
		{"zero amount", 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.BridgeFee(tt.amount, tt.chainID))
		})
	}
}

func TestChainRegistry_BridgeFeeFloorFormula(t *testing.T) {
	r := NewChainRegistry()

	// fee must equal amount*bps/10000 rounded toward zero for every chain
	for _, id := range r.SupportedChains() {
		cfg, ok := r.GetConfig(id)
		require.True(t, ok)
		for _, amount := range []int64{1, 9999, 10000, 990000, 123456789} {
			want := amount * cfg.BridgeFeeBps / 10000
			assert.Equal(t, want, r.BridgeFee(amount, id), "chain %d amount %d", id, amount)
		}
	}
}
