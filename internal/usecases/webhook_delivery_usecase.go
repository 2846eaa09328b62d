package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"piaas.backend/internal/domain/entities"
	domainerrors "piaas.backend/internal/domain/errors"
	"piaas.backend/internal/domain/repositories"
	"piaas.backend/pkg/logger"
	"piaas.backend/pkg/metrics"
)

// WebhookDeliveryUsecase persists webhook events and delivers them to vendor
// endpoints with capped exponential backoff. All attempt bookkeeping goes
// through a conditional update so overlapping sweeps no-op on terminal rows.
type WebhookDeliveryUsecase struct {
	webhookRepo repositories.WebhookEventRepository
	vendorRepo  repositories.VendorRepository
	client      *http.Client
	maxAttempts int
	baseDelay   time.Duration
	version     string
	dispatch    func(eventID uuid.UUID)
}

// NewWebhookDeliveryUsecase creates a new webhook delivery usecase
func NewWebhookDeliveryUsecase(
	webhookRepo repositories.WebhookEventRepository,
	vendorRepo repositories.VendorRepository,
	maxAttempts int,
	baseDelay time.Duration,
	timeout time.Duration,
	version string,
) *WebhookDeliveryUsecase {
	if maxAttempts <= 0 {
		maxAttempts = DefaultWebhookMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultWebhookBaseDelay
	}
	if timeout <= 0 {
		timeout = DefaultWebhookTimeout
	}
	u := &WebhookDeliveryUsecase{
		webhookRepo: webhookRepo,
		vendorRepo:  vendorRepo,
		client:      &http.Client{Timeout: timeout},
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		version:     version,
	}
	u.dispatch = func(eventID uuid.UUID) {
		go func() {
			if err := u.DeliverEvent(context.Background(), eventID); err != nil {
				logger.Warn(context.Background(), "webhook dispatch failed",
					zap.String("event_id", eventID.String()), zap.Error(err))
			}
		}()
	}
	return u
}

// SetDispatcher overrides the async first-attempt hook. Tests install a
// synchronous dispatcher here.
func (u *WebhookDeliveryUsecase) SetDispatcher(d func(eventID uuid.UUID)) {
	u.dispatch = d
}

// SetHTTPClient overrides the outbound HTTP client
func (u *WebhookDeliveryUsecase) SetHTTPClient(c *http.Client) {
	u.client = c
}

// Enqueue snapshots the payload and persists a PENDING event for the vendor.
// Vendors without a webhook URL are skipped silently. The first delivery
// attempt is handed to the dispatcher so the caller never waits on the
// vendor's endpoint.
func (u *WebhookDeliveryUsecase) Enqueue(ctx context.Context, vendorID uuid.UUID, eventType string, payload map[string]interface{}) error {
	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return err
	}
	if !vendor.WebhookURL.Valid || vendor.WebhookURL.String == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	now := time.Now()
	event := &entities.WebhookEvent{
		ID:          uuid.New(),
		VendorID:    vendorID,
		EventType:   eventType,
		Payload:     string(body),
		WebhookURL:  vendor.WebhookURL.String,
		Status:      entities.WebhookStatusPending,
		Attempts:    0,
		MaxAttempts: u.maxAttempts,
		NextRetryAt: null.TimeFrom(now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.webhookRepo.Create(ctx, event); err != nil {
		return err
	}

	u.dispatch(event.ID)
	return nil
}

// DeliverEvent attempts delivery of a single event. Terminal events are a
// no-op.
func (u *WebhookDeliveryUsecase) DeliverEvent(ctx context.Context, eventID uuid.UUID) error {
	event, err := u.webhookRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Status != entities.WebhookStatusPending {
		return nil
	}
	return u.attempt(ctx, event)
}

// ProcessDue sweeps all PENDING events whose retry time has passed and
// attempts each one. Returns the number of events attempted.
func (u *WebhookDeliveryUsecase) ProcessDue(ctx context.Context, now time.Time, limit int) (int, error) {
	events, err := u.webhookRepo.GetDue(ctx, now, limit)
	if err != nil {
		return 0, err
	}
	metrics.WebhookSweepBatch.Set(float64(len(events)))

	processed := 0
	for _, event := range events {
		if err := u.attempt(ctx, event); err != nil {
			logger.Warn(ctx, "webhook attempt failed",
				zap.String("event_id", event.ID.String()), zap.Error(err))
			continue
		}
		processed++
	}
	return processed, nil
}

// ListEvents returns a vendor's events newest-first
func (u *WebhookDeliveryUsecase) ListEvents(ctx context.Context, vendorID uuid.UUID, limit int) ([]*entities.WebhookEvent, error) {
	return u.webhookRepo.ListByVendor(ctx, vendorID, limit)
}

// Cleanup deletes events older than the given number of days
func (u *WebhookDeliveryUsecase) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(olderThanDays) * 24 * time.Hour)
	deleted, err := u.webhookRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.WebhooksPurged.Add(float64(deleted))
	return deleted, nil
}

// attempt performs one POST to the vendor endpoint and records the outcome.
// 2xx settles the event as SENT; otherwise it stays PENDING with a backoff
// until attempts are exhausted, then EXPIRED.
func (u *WebhookDeliveryUsecase) attempt(ctx context.Context, event *entities.WebhookEvent) error {
	now := time.Now()
	status, body, reqErr := u.post(ctx, event, now)

	event.Attempts++
	event.LastAttemptAt = null.TimeFrom(now)
	if reqErr != nil {
		event.ResponseStatus = null.Int{}
		event.ResponseBody = null.StringFrom(truncate(reqErr.Error(), MaxResponseBodyLen))
	} else {
		event.ResponseStatus = null.IntFrom(status)
		event.ResponseBody = null.StringFrom(truncate(body, MaxResponseBodyLen))
	}

	result := ""
	switch {
	case reqErr == nil && status >= 200 && status < 300:
		event.Status = entities.WebhookStatusSent
		event.NextRetryAt = null.Time{}
		result = "sent"
	case event.Attempts < event.MaxAttempts:
		event.NextRetryAt = null.TimeFrom(now.Add(u.backoffDelay(event.Attempts)))
		result = "retry"
	default:
		event.Status = entities.WebhookStatusExpired
		event.NextRetryAt = null.Time{}
		result = "expired"
	}
	metrics.WebhookDeliveries.WithLabelValues(event.EventType, result).Inc()

	if err := u.webhookRepo.UpdateAttempt(ctx, event); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			// lost the race with another sweep, the row is already terminal
			return nil
		}
		return err
	}
	return nil
}

func (u *WebhookDeliveryUsecase) post(ctx context.Context, event *entities.WebhookEvent, now time.Time) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, event.WebhookURL, bytes.NewReader([]byte(event.Payload)))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", WebhookUserAgent, u.version))
	req.Header.Set("X-PIaaS-Event", event.EventType)
	req.Header.Set("X-PIaaS-Vendor-ID", event.VendorID.String())
	req.Header.Set("X-PIaaS-Timestamp", now.UTC().Format(time.RFC3339))

	resp, err := u.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBodyLen+1))
	if err != nil {
		return resp.StatusCode, "", nil
	}
	return resp.StatusCode, string(body), nil
}

// backoffDelay returns base * 2^(attempts-1), capped at MaxWebhookRetryDelay
func (u *WebhookDeliveryUsecase) backoffDelay(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := u.baseDelay
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= MaxWebhookRetryDelay {
			return MaxWebhookRetryDelay
		}
	}
	if d > MaxWebhookRetryDelay {
		return MaxWebhookRetryDelay
	}
	return d
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
