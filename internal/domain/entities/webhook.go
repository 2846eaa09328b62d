package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// WebhookStatus represents webhook event delivery status
type WebhookStatus string

const (
	WebhookStatusPending WebhookStatus = "PENDING"
	WebhookStatusSent    WebhookStatus = "SENT"
	WebhookStatusFailed  WebhookStatus = "FAILED"
	WebhookStatusExpired WebhookStatus = "EXPIRED"
)

// Webhook event types emitted by the service
const (
	EventIntentCreated       = "payment_intent.created"
	EventIntentSubmitted     = "payment_intent.submitted"
	EventIntentSettled       = "payment_intent.settled"
	EventSubscriptionRenewed = "subscription.renewed"
)

// WebhookEvent represents a durable webhook delivery record. Payload is the
// serialized snapshot taken at enqueue time; delivery never re-reads domain
// state.
type WebhookEvent struct {
	ID             uuid.UUID     `json:"id"`
	VendorID       uuid.UUID     `json:"vendorId"`
	EventType      string        `json:"eventType"`
	Payload        string        `json:"payload"`
	WebhookURL     string        `json:"webhookUrl"`
	Status         WebhookStatus `json:"status"`
	Attempts       int           `json:"attempts"`
	MaxAttempts    int           `json:"maxAttempts"`
	NextRetryAt    null.Time     `json:"nextRetryAt,omitempty"`
	LastAttemptAt  null.Time     `json:"lastAttemptAt,omitempty"`
	ResponseStatus null.Int      `json:"responseStatus,omitempty"`
	ResponseBody   null.String   `json:"responseBody,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
