package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Webhook      WebhookConfig
	Intent       IntentConfig
	Subscription SubscriptionConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// WebhookConfig holds webhook delivery configuration
type WebhookConfig struct {
	MaxAttempts       int
	BaseDelay         time.Duration
	Timeout           time.Duration
	RetentionDays     int
	SweepInterval     time.Duration
	SweepBatch        int
	RetentionInterval time.Duration
}

// IntentConfig holds payment intent recovery configuration
type IntentConfig struct {
	RecoveryInterval time.Duration
	RecoveryAfter    time.Duration
}

// SubscriptionConfig holds subscription renewal configuration
type SubscriptionConfig struct {
	RenewalInterval time.Duration
	RenewalBatch    int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "piaas"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Webhook: WebhookConfig{
			MaxAttempts:       getEnvAsInt("WEBHOOK_MAX_ATTEMPTS", 3),
			BaseDelay:         getEnvAsDuration("WEBHOOK_BASE_DELAY", 2*time.Second),
			Timeout:           getEnvAsDuration("WEBHOOK_TIMEOUT", 30*time.Second),
			RetentionDays:     getEnvAsInt("WEBHOOK_RETENTION_DAYS", 30),
			SweepInterval:     getEnvAsDuration("WEBHOOK_SWEEP_INTERVAL", 10*time.Second),
			SweepBatch:        getEnvAsInt("WEBHOOK_SWEEP_BATCH", 50),
			RetentionInterval: getEnvAsDuration("WEBHOOK_RETENTION_INTERVAL", 6*time.Hour),
		},
		Intent: IntentConfig{
			RecoveryInterval: getEnvAsDuration("INTENT_RECOVERY_INTERVAL", time.Minute),
			RecoveryAfter:    getEnvAsDuration("INTENT_RECOVERY_AFTER", 5*time.Minute),
		},
		Subscription: SubscriptionConfig{
			RenewalInterval: getEnvAsDuration("SUBSCRIPTION_RENEWAL_INTERVAL", time.Hour),
			RenewalBatch:    getEnvAsInt("SUBSCRIPTION_RENEWAL_BATCH", 100),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
