package config

import "time"

// Store backends selectable through STORE_BACKEND
const (
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
	StoreBackendMemory   = "memory"
)

// Environment names
const (
	EnvironmentDev  = "dev"
	EnvironmentProd = "prod"
)

// Limits applied during validation
const (
	MinPort                = 1
	MaxPort                = 65535
	MinInitDataMaxAge      = time.Minute
	MaxStorageRetries      = 10
	MinWebhookSecretLength = 16
)

// Error messages
const (
	ErrMsgParseEnv              = "failed to parse environment"
	ErrMsgInvalidPort           = "invalid PORT value"
	ErrMsgAPIKeyRequired        = "API_KEY environment variable must be set for security"
	ErrMsgBotTokenRequired      = "TELEGRAM_BOT_TOKEN environment variable must be set"
	ErrMsgInvalidBackend        = "invalid STORE_BACKEND"
	ErrMsgWebhookSecretRequired = "TELEGRAM_WEBHOOK_SECRET must be set when TELEGRAM_WEBHOOK_URL is set"
	ErrMsgInitDataMaxAge        = "INIT_DATA_MAX_AGE must be at least 1m"
	ErrMsgStorageRetryMax       = "STORAGE_RETRY_MAX must be between 0 and 10"
	ErrMsgWorkerCount           = "WORKER_COUNT and WORKER_QUEUE_SIZE must be positive"
)
