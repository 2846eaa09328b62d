package jobs

import (
	"context"
	"log"
	"time"

	"piaas.backend/internal/usecases"
)

// WebhookDispatchJob sweeps pending webhook events whose retry time has
// passed and attempts delivery.
type WebhookDispatchJob struct {
	delivery *usecases.WebhookDeliveryUsecase
	interval time.Duration
	batch    int
	stop     chan struct{}
}

func NewWebhookDispatchJob(delivery *usecases.WebhookDeliveryUsecase, interval time.Duration, batch int) *WebhookDispatchJob {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if batch <= 0 {
		batch = 50
	}
	return &WebhookDispatchJob{
		delivery: delivery,
		interval: interval,
		batch:    batch,
		stop:     make(chan struct{}),
	}
}

func (j *WebhookDispatchJob) Start(ctx context.Context) {
	log.Println("🕐 Starting webhook dispatch job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Webhook dispatch job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Webhook dispatch job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *WebhookDispatchJob) Stop() {
	close(j.stop)
}

func (j *WebhookDispatchJob) sweep(ctx context.Context) {
	processed, err := j.delivery.ProcessDue(ctx, time.Now(), j.batch)
	if err != nil {
		log.Printf("❌ Error sweeping pending webhooks: %v", err)
		return
	}
	if processed > 0 {
		log.Printf("✅ Attempted %d pending webhooks", processed)
	}
}
