package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"piaas.backend/internal/interfaces/http/handlers"
	"piaas.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	paymentIntentHandler *handlers.PaymentIntentHandler
	chainHandler         *handlers.ChainHandler
	routerHandler        *handlers.RouterHandler
	webhookHandler       *handlers.WebhookHandler
	subscriptionHandler  *handlers.SubscriptionHandler
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Payment intent routes
		intents := v1.Group("/payment-intents")
		{
			intents.POST("", middleware.IdempotencyMiddleware(), d.paymentIntentHandler.CreatePaymentIntent)
			intents.GET("/:id", d.paymentIntentHandler.GetPaymentIntent)
			intents.POST("/:id/submit", d.paymentIntentHandler.SubmitTransaction)
			intents.POST("/:id/complete", d.paymentIntentHandler.CompleteTransaction)
		}

		// Chain routes (public)
		chains := v1.Group("/chains")
		{
			chains.GET("", d.chainHandler.ListChains)
			chains.GET("/:id", d.chainHandler.GetChain)
		}

		// Router routes (public)
		router := v1.Group("/router")
		{
			router.POST("/estimate", d.routerHandler.Estimate)
		}

		// Webhook routes
		webhooks := v1.Group("/webhooks")
		{
			webhooks.GET("/events/:vendorId", d.webhookHandler.ListEvents)
			webhooks.POST("/process", d.webhookHandler.ProcessPending)
			webhooks.DELETE("/cleanup", d.webhookHandler.Cleanup)
		}

		// Subscription routes
		subscriptions := v1.Group("/subscriptions")
		{
			subscriptions.POST("", d.subscriptionHandler.CreateSubscription)
			subscriptions.GET("/:id", d.subscriptionHandler.GetSubscription)
			subscriptions.POST("/:id/renew", d.subscriptionHandler.RenewSubscription)
			subscriptions.POST("/:id/cancel", d.subscriptionHandler.CancelSubscription)
		}
	}
}
