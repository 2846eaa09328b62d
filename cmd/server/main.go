package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"piaas.backend/internal/config"
	"piaas.backend/internal/infrastructure/jobs"
	"piaas.backend/internal/infrastructure/repositories"
	"piaas.backend/internal/interfaces/http/handlers"
	"piaas.backend/internal/interfaces/http/middleware"
	"piaas.backend/internal/usecases"
	"piaas.backend/pkg/logger"
	"piaas.backend/pkg/redis"
)

const version = "1.0.0"

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize repositories
	intentRepo := repositories.NewPaymentIntentRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	webhookRepo := repositories.NewWebhookEventRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	registry := usecases.NewChainRegistry()
	routerUsecase := usecases.NewRouterUsecase(registry)
	webhookDelivery := usecases.NewWebhookDeliveryUsecase(
		webhookRepo, vendorRepo,
		cfg.Webhook.MaxAttempts, cfg.Webhook.BaseDelay, cfg.Webhook.Timeout,
		version,
	)
	intentUsecase := usecases.NewPaymentIntentUsecase(intentRepo, vendorRepo, routerUsecase, registry, webhookDelivery)
	subscriptionUsecase := usecases.NewSubscriptionUsecase(subscriptionRepo, vendorRepo, intentUsecase, registry, webhookDelivery, uow)

	// Initialize handlers
	paymentIntentHandler := handlers.NewPaymentIntentHandler(intentUsecase)
	chainHandler := handlers.NewChainHandler(registry)
	routerHandler := handlers.NewRouterHandler(routerUsecase)
	webhookHandler := handlers.NewWebhookHandler(webhookDelivery)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatchJob := jobs.NewWebhookDispatchJob(webhookDelivery, cfg.Webhook.SweepInterval, cfg.Webhook.SweepBatch)
	retentionJob := jobs.NewWebhookRetentionJob(webhookDelivery, cfg.Webhook.RetentionInterval, cfg.Webhook.RetentionDays)
	recoveryJob := jobs.NewIntentRecoveryJob(intentRepo, cfg.Intent.RecoveryInterval, cfg.Intent.RecoveryAfter)
	renewalJob := jobs.NewSubscriptionRenewalJob(subscriptionUsecase, cfg.Subscription.RenewalInterval, cfg.Subscription.RenewalBatch)
	go dispatchJob.Start(ctx)
	go retentionJob.Start(ctx)
	go recoveryJob.Start(ctx)
	go renewalJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		paymentIntentHandler: paymentIntentHandler,
		chainHandler:         chainHandler,
		routerHandler:        routerHandler,
		webhookHandler:       webhookHandler,
		subscriptionHandler:  subscriptionHandler,
	})

	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		dispatchJob.Stop()
		retentionJob.Stop()
		recoveryJob.Stop()
		renewalJob.Stop()
		cancel()
	}()

	log.Printf("🚀 PIaaS Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
