package jobs

import (
	"context"
	"log"
	"time"

	"piaas.backend/internal/usecases"
)

// WebhookRetentionJob deletes webhook events older than the retention window
type WebhookRetentionJob struct {
	delivery      *usecases.WebhookDeliveryUsecase
	interval      time.Duration
	retentionDays int
	stop          chan struct{}
}

func NewWebhookRetentionJob(delivery *usecases.WebhookDeliveryUsecase, interval time.Duration, retentionDays int) *WebhookRetentionJob {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &WebhookRetentionJob{
		delivery:      delivery,
		interval:      interval,
		retentionDays: retentionDays,
		stop:          make(chan struct{}),
	}
}

func (j *WebhookRetentionJob) Start(ctx context.Context) {
	log.Println("🕐 Starting webhook retention job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Webhook retention job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Webhook retention job stopped")
			return
		case <-ticker.C:
			j.purge(ctx)
		}
	}
}

func (j *WebhookRetentionJob) Stop() {
	close(j.stop)
}

func (j *WebhookRetentionJob) purge(ctx context.Context) {
	deleted, err := j.delivery.Cleanup(ctx, j.retentionDays)
	if err != nil {
		log.Printf("❌ Error purging old webhook events: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Purged %d webhook events older than %d days", deleted, j.retentionDays)
	}
}
