package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port               int      `env:"PORT" envDefault:"8080"`
	APIKey             string   `env:"API_KEY"` // API key for operator endpoints
	TrustedProxies     []string `env:"TRUSTED_PROXIES" envSeparator:","`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`

	StoreBackend string        `env:"STORE_BACKEND" envDefault:"postgres"`
	DBUser       string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword   string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost       string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort       string        `env:"DB_PORT" envDefault:"5432"`
	DBName       string        `env:"DB_NAME" envDefault:"farmbot"`
	DBMaxConns   int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxIdle    time.Duration `env:"DB_MAX_IDLE" envDefault:"5m"`
	DBMaxLife    time.Duration `env:"DB_MAX_LIFE" envDefault:"1h"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	TelegramBotToken      string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramWebhookSecret string `env:"TELEGRAM_WEBHOOK_SECRET"`
	TelegramWebhookURL    string `env:"TELEGRAM_WEBHOOK_URL"`
	MiniAppURL            string `env:"MINI_APP_URL"`

	InitDataMaxAge time.Duration `env:"INIT_DATA_MAX_AGE" envDefault:"24h"`
	CatalogPath    string        `env:"CATALOG_PATH"`
	DevMode        bool          `env:"DEV_MODE" envDefault:"false"`

	UnsettledGrace        time.Duration `env:"UNSETTLED_GRACE" envDefault:"10m"`
	UnsettledScanInterval time.Duration `env:"UNSETTLED_SCAN_INTERVAL" envDefault:"1m"`
	PaymentCacheSize      int           `env:"PAYMENT_CACHE_SIZE" envDefault:"4096"`
	PaymentCacheTTL       time.Duration `env:"PAYMENT_CACHE_TTL" envDefault:"1h"`

	StorageRetryMax  uint64        `env:"STORAGE_RETRY_MAX" envDefault:"3"`
	StorageRetryBase time.Duration `env:"STORAGE_RETRY_BASE" envDefault:"20ms"`

	WorkerCount     int `env:"WORKER_COUNT" envDefault:"4"`
	WorkerQueueSize int `env:"WORKER_QUEUE_SIZE" envDefault:"256"`

	EventDeadLetterPath string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/event_deadletter.jsonl"`
	EventMaxRetries     int           `env:"EVENT_MAX_RETRIES" envDefault:"3"`
	EventRetryDelay     time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) {
			for _, e := range aggErr.Errors {
				var parseErr env.ParseError
				if errors.As(e, &parseErr) && parseErr.Name == "Port" {
					return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
				}
			}
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgParseEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that env tags cannot express
func (c *Config) Validate() error {
	if c.Port < MinPort || c.Port > MaxPort {
		return fmt.Errorf("%s: %d", ErrMsgInvalidPort, c.Port)
	}

	if c.APIKey == "" {
		return errors.New(ErrMsgAPIKeyRequired)
	}

	if c.TelegramBotToken == "" {
		return errors.New(ErrMsgBotTokenRequired)
	}

	if c.TelegramWebhookURL != "" && c.TelegramWebhookSecret == "" {
		return errors.New(ErrMsgWebhookSecretRequired)
	}

	switch c.StoreBackend {
	case StoreBackendPostgres, StoreBackendRedis, StoreBackendMemory:
	default:
		return fmt.Errorf("%s: %q", ErrMsgInvalidBackend, c.StoreBackend)
	}

	if c.InitDataMaxAge < MinInitDataMaxAge {
		return errors.New(ErrMsgInitDataMaxAge)
	}

	if c.StorageRetryMax > MaxStorageRetries {
		return errors.New(ErrMsgStorageRetryMax)
	}

	if c.WorkerCount <= 0 || c.WorkerQueueSize <= 0 {
		return errors.New(ErrMsgWorkerCount)
	}

	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProd
}
