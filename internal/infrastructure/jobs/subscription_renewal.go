package jobs

import (
	"context"
	"log"
	"time"

	"piaas.backend/internal/usecases"
)

// SubscriptionRenewalJob renews active subscriptions whose renewal time has
// passed, creating the next cycle's payment intent.
type SubscriptionRenewalJob struct {
	subs     *usecases.SubscriptionUsecase
	interval time.Duration
	batch    int
	stop     chan struct{}
}

func NewSubscriptionRenewalJob(subs *usecases.SubscriptionUsecase, interval time.Duration, batch int) *SubscriptionRenewalJob {
	if interval <= 0 {
		interval = time.Hour
	}
	if batch <= 0 {
		batch = 100
	}
	return &SubscriptionRenewalJob{
		subs:     subs,
		interval: interval,
		batch:    batch,
		stop:     make(chan struct{}),
	}
}

func (j *SubscriptionRenewalJob) Start(ctx context.Context) {
	log.Println("🕐 Starting subscription renewal job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Subscription renewal job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Subscription renewal job stopped")
			return
		case <-ticker.C:
			j.renew(ctx)
		}
	}
}

func (j *SubscriptionRenewalJob) Stop() {
	close(j.stop)
}

func (j *SubscriptionRenewalJob) renew(ctx context.Context) {
	renewed, err := j.subs.RenewDue(ctx, time.Now(), j.batch)
	if err != nil {
		log.Printf("❌ Error renewing due subscriptions: %v", err)
		return
	}
	if renewed > 0 {
		log.Printf("✅ Renewed %d subscriptions", renewed)
	}
}
