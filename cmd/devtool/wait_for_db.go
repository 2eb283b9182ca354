package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/database"
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	attempts := uint64(defaultDBWait)
	if len(args) > 0 {
		n, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid attempt count %q: %w", args[0], err)
		}
		attempts = n
	}

	dsn := dbConnString()
	ctx := context.Background()
	try := 0

	backoff := retry.WithMaxRetries(attempts, retry.NewConstant(2*time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		try++
		pool, err := database.NewPool(ctx, dsn, 1, time.Minute, time.Minute)
		if err != nil {
			fmt.Printf("Database not ready (%d/%d): %v\n", try, attempts+1, err)
			return retry.RetryableError(err)
		}
		pool.Close()
		return nil
	})
	if err != nil {
		return fmt.Errorf("database failed to become ready after %d attempts: %w", try, err)
	}

	PrintSuccess("Database is ready")
	return nil
}

// dbConnString builds the DSN from the same DB_* variables the server reads
func dbConnString() string {
	cfg := &config.Config{
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "farmbot"),
	}
	return cfg.GetDBConnString()
}
