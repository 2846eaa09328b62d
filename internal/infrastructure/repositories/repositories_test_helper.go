package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createVendorTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE vendors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		wallet_address TEXT NOT NULL,
		webhook_url TEXT,
		enabled_chains TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE products (
		id TEXT PRIMARY KEY,
		vendor_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price_usdc_minor INTEGER,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPaymentIntentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payment_intents (
		id TEXT PRIMARY KEY,
		intent_id TEXT NOT NULL UNIQUE,
		vendor_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		customer_email TEXT,
		src_chain_id INTEGER NOT NULL,
		dest_chain_id INTEGER NOT NULL,
		amount_usdc_minor INTEGER NOT NULL,
		bridge_fee_usdc_minor INTEGER NOT NULL DEFAULT 0,
		total_usdc_minor INTEGER NOT NULL,
		status TEXT NOT NULL,
		router_address TEXT NOT NULL,
		router_function TEXT NOT NULL,
		calldata TEXT NOT NULL,
		src_tx_hash TEXT,
		settlement_tx_hash TEXT,
		settlement_chain_id INTEGER,
		source_address TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createWebhookEventTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE webhook_events (
		id TEXT PRIMARY KEY,
		vendor_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		webhook_url TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL,
		next_retry_at DATETIME,
		last_attempt_at DATETIME,
		response_status INTEGER,
		response_body TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createSubscriptionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE subscriptions (
		id TEXT PRIMARY KEY,
		subscription_id TEXT NOT NULL UNIQUE,
		vendor_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		plan_id TEXT NOT NULL,
		customer_email TEXT,
		status TEXT NOT NULL,
		src_chain_id INTEGER NOT NULL,
		dest_chain_id INTEGER NOT NULL,
		billing_interval TEXT NOT NULL,
		amount_usdc_minor INTEGER NOT NULL,
		next_renewal_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
