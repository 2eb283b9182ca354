package bootstrap

import (
	"log/slog"

	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// SetupLogger installs the structured default logger for the process
// and logs the effective configuration at startup.
func SetupLogger(cfg *config.Config) *slog.Logger {
	l := logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		ServiceName,
		cfg.Version,
		cfg.Environment,
		!cfg.IsProduction(),
	))

	l.Info(LogMsgStartingFarmBot,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	l.Debug(LogMsgConfigurationLoaded,
		"store_backend", cfg.StoreBackend,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"redis_addr", cfg.RedisAddr,
		"port", cfg.Port,
		"dev_mode", cfg.DevMode)

	return l
}
