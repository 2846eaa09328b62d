package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for monitoring
var (
	IntentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "piaas_intent_transitions_total",
		Help: "Payment intent state transitions",
	}, []string{"from", "to"})

	IntentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "piaas_intents_created_total",
		Help: "Payment intents created by source chain",
	}, []string{"src_chain_id"})

	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "piaas_webhook_deliveries_total",
		Help: "Webhook delivery attempts by event type and result",
	}, []string{"event_type", "result"})

	WebhookSweepBatch = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "piaas_webhook_sweep_batch_size",
		Help: "Number of due webhook events picked up by the last sweep",
	})

	WebhooksPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "piaas_webhooks_purged_total",
		Help: "Webhook events removed by retention cleanup",
	})

	IntentsRecovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "piaas_intents_recovered_total",
		Help: "Stuck CREATED intents promoted by the recovery job",
	})

	SubscriptionRenewals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "piaas_subscription_renewals_total",
		Help: "Subscription renewals by result",
	}, []string{"result"})
)
