package jobs

import (
	"context"
	"log"
	"time"

	"piaas.backend/internal/domain/repositories"
	"piaas.backend/pkg/metrics"
)

// IntentRecoveryJob promotes payment intents stranded in CREATED by a crash
// between the insert and the promotion to AWAITING_USER_TX.
type IntentRecoveryJob struct {
	repo      repositories.PaymentIntentRepository
	interval  time.Duration
	olderThan time.Duration
	stop      chan struct{}
}

func NewIntentRecoveryJob(repo repositories.PaymentIntentRepository, interval, olderThan time.Duration) *IntentRecoveryJob {
	if interval <= 0 {
		interval = time.Minute
	}
	if olderThan <= 0 {
		olderThan = 5 * time.Minute
	}
	return &IntentRecoveryJob{
		repo:      repo,
		interval:  interval,
		olderThan: olderThan,
		stop:      make(chan struct{}),
	}
}

func (j *IntentRecoveryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting intent recovery job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Intent recovery job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Intent recovery job stopped")
			return
		case <-ticker.C:
			j.recover(ctx)
		}
	}
}

func (j *IntentRecoveryJob) Stop() {
	close(j.stop)
}

func (j *IntentRecoveryJob) recover(ctx context.Context) {
	before := time.Now().Add(-j.olderThan)
	promoted, err := j.repo.PromoteStuckCreated(ctx, before)
	if err != nil {
		log.Printf("❌ Error recovering stuck payment intents: %v", err)
		return
	}
	if promoted > 0 {
		metrics.IntentsRecovered.Add(float64(promoted))
		log.Printf("✅ Recovered %d stuck payment intents", promoted)
	}
}
