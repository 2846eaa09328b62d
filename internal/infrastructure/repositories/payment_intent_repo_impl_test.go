package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"piaas.backend/internal/domain/entities"
	domainerrors "piaas.backend/internal/domain/errors"
)

func seedIntent(t *testing.T, repo *PaymentIntentRepository, intentID string, status entities.IntentStatus) *entities.PaymentIntent {
	t.Helper()
	now := time.Now()
	intent := &entities.PaymentIntent{
		ID:                 uuid.New(),
		IntentID:           intentID,
		VendorID:           uuid.New(),
		ProductID:          uuid.New(),
		SrcChainID:         84532,
		DestChainID:        8453,
		AmountUSDCMinor:    990000,
		BridgeFeeUSDCMinor: 495,
		TotalUSDCMinor:     990495,
		Status:             status,
		RouterAddress:      "0x1111111111111111111111111111111111111111",
		RouterFunction:     "bridgePayment",
		Calldata:           "0xdeadbeef",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	require.NoError(t, repo.Create(context.Background(), intent))
	return intent
}

func TestPaymentIntentRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createPaymentIntentTable(t, db)
	repo := NewPaymentIntentRepository(db)

	created := seedIntent(t, repo, "pi_abc123def456", entities.IntentStatusCreated)

	got, err := repo.GetByIntentID(context.Background(), "pi_abc123def456")
	require.NoError(t, err)
	assert.Equal(t, created.IntentID, got.IntentID)
	assert.Equal(t, entities.IntentStatusCreated, got.Status)
	assert.Equal(t, int64(990000), got.AmountUSDCMinor)
	assert.Equal(t, int64(495), got.BridgeFeeUSDCMinor)
	assert.Equal(t, int64(990495), got.TotalUSDCMinor)
	assert.Equal(t, "bridgePayment", got.RouterFunction)
	assert.False(t, got.SrcTxHash.Valid)
}

func TestPaymentIntentRepository_GetByIntentID_NotFound(t *testing.T) {
	db := newTestDB(t)
	createPaymentIntentTable(t, db)
	repo := NewPaymentIntentRepository(db)

	_, err := repo.GetByIntentID(context.Background(), "pi_missing000000")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPaymentIntentRepository_Transition_Legal(t *testing.T) {
	db := newTestDB(t)
	createPaymentIntentTable(t, db)
	repo := NewPaymentIntentRepository(db)

	seedIntent(t, repo, "pi_000000000001", entities.IntentStatusAwaitingUserTx)

	err := repo.Transition(context.Background(), "pi_000000000001",
		[]entities.IntentStatus{entities.IntentStatusAwaitingUserTx},
		entities.IntentStatusSubmitted,
		map[string]interface{}{"src_tx_hash": "0xabc"})
	require.NoError(t, err)

	got, err := repo.GetByIntentID(context.Background(), "pi_000000000001")
	require.NoError(t, err)
	assert.Equal(t, entities.IntentStatusSubmitted, got.Status)
	assert.Equal(t, "0xabc", got.SrcTxHash.String)
}

func TestPaymentIntentRepository_Transition_Conflict(t *testing.T) {
	db := newTestDB(t)
	createPaymentIntentTable(t, db)
	repo := NewPaymentIntentRepository(db)

	seedIntent(t, repo, "pi_000000000002", entities.IntentStatusSubmitted)

	err := repo.Transition(context.Background(), "pi_000000000002",
		[]entities.IntentStatus{entities.IntentStatusAwaitingUserTx},
		entities.IntentStatusSubmitted, nil)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	// Status must be untouched
	got, err := repo.GetByIntentID(context.Background(), "pi_000000000002")
	require.NoError(t, err)
	assert.Equal(t, entities.IntentStatusSubmitted, got.Status)
}

func TestPaymentIntentRepository_Transition_NotFound(t *testing.T) {
	db := newTestDB(t)
	createPaymentIntentTable(t, db)
	repo := NewPaymentIntentRepository(db)

	err := repo.Transition(context.Background(), "pi_nope00000000",
		[]entities.IntentStatus{entities.IntentStatusAwaitingUserTx},
		entities.IntentStatusSubmitted, nil)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPaymentIntentRepository_Transition_MultipleFrom(t *testing.T) {
	db := newTestDB(t)
	createPaymentIntentTable(t, db)
	repo := NewPaymentIntentRepository(db)

	seedIntent(t, repo, "pi_000000000003", entities.IntentStatusFailed)

	// FAILED is re-enterable into the settlement path
	err := repo.Transition(context.Background(), "pi_000000000003",
		[]entities.IntentStatus{entities.IntentStatusSubmitted, entities.IntentStatusCreated, entities.IntentStatusFailed},
		entities.IntentStatusSettled,
		map[string]interface{}{"settlement_tx_hash": "0xdef", "settlement_chain_id": int64(8453)})
	require.NoError(t, err)

	got, err := repo.GetByIntentID(context.Background(), "pi_000000000003")
	require.NoError(t, err)
	assert.Equal(t, entities.IntentStatusSettled, got.Status)
	assert.Equal(t, "0xdef", got.SettlementTxHash.String)
	assert.Equal(t, int64(8453), got.SettlementChainID.Int64)
}

func TestPaymentIntentRepository_PromoteStuckCreated(t *testing.T) {
	db := newTestDB(t)
	createPaymentIntentTable(t, db)
	repo := NewPaymentIntentRepository(db)

	old := seedIntent(t, repo, "pi_stuck0000001", entities.IntentStatusCreated)
	mustExec(t, db, `UPDATE payment_intents SET created_at = ? WHERE intent_id = ?`,
		time.Now().Add(-10*time.Minute), old.IntentID)
	seedIntent(t, repo, "pi_fresh0000001", entities.IntentStatusCreated)

	n, err := repo.PromoteStuckCreated(context.Background(), time.Now().Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByIntentID(context.Background(), "pi_stuck0000001")
	require.NoError(t, err)
	assert.Equal(t, entities.IntentStatusAwaitingUserTx, got.Status)

	fresh, err := repo.GetByIntentID(context.Background(), "pi_fresh0000001")
	require.NoError(t, err)
	assert.Equal(t, entities.IntentStatusCreated, fresh.Status)

	// Second sweep is a no-op
	n, err = repo.PromoteStuckCreated(context.Background(), time.Now().Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestPaymentIntentRepository_ReadRoundTripStable(t *testing.T) {
	db := newTestDB(t)
	createPaymentIntentTable(t, db)
	repo := NewPaymentIntentRepository(db)

	seedIntent(t, repo, "pi_stable000001", entities.IntentStatusAwaitingUserTx)

	first, err := repo.GetByIntentID(context.Background(), "pi_stable000001")
	require.NoError(t, err)
	second, err := repo.GetByIntentID(context.Background(), "pi_stable000001")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
