package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/FarmBot_Go/internal/testing/leaktest"
)

var (
	testDBConnString string
)

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		var connStr string
		connStr, terminate = setupContainer(ctx)
		testDBConnString = connStr
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func skipWithoutDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func setupContainer(ctx context.Context) (string, func()) {
	// Handle potential panics from testcontainers
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func TestNewPool_AppliesLimits(t *testing.T) {
	skipWithoutDB(t)

	pool, err := NewPool(context.Background(), testDBConnString, 1, 30*time.Second, 2*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	cfg := pool.Config()
	assert.Equal(t, int32(1), cfg.MaxConns)
	assert.Equal(t, int32(1), cfg.MinConns, "min conns never exceed max conns")
	assert.Equal(t, 30*time.Second, cfg.MaxConnIdleTime)
	assert.Equal(t, 2*time.Minute, cfg.MaxConnLifetime)
}

func TestNewPool_ExhaustedPoolBlocksUntilRelease(t *testing.T) {
	skipWithoutDB(t)

	const maxConns = 2
	pool, err := NewPool(context.Background(), testDBConnString, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()
	held := make([]*pgxpool.Conn, 0, maxConns)
	for i := 0; i < maxConns; i++ {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err)
		held = append(held, conn)
	}

	shortCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	_, err = pool.Acquire(shortCtx)
	cancel()
	assert.Error(t, err, "acquire must time out while every connection is held")

	held[0].Release()
	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	conn.Release()
	held[1].Release()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}

func TestNewPool_ConcurrentQueriesDoNotLeak(t *testing.T) {
	skipWithoutDB(t)

	pool, err := NewPool(context.Background(), testDBConnString, 4, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var got int
			if err := pool.QueryRow(context.Background(), "SELECT $1::int", id).Scan(&got); err != nil {
				t.Errorf("query %d: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
	checker.Check(2)
}

func TestMigrate_CreatesLedgerTables(t *testing.T) {
	skipWithoutDB(t)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, testDBConnString))
	// second run is a no-op
	require.NoError(t, Migrate(ctx, testDBConnString))

	pool, err := NewPool(ctx, testDBConnString, 2, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	for _, table := range []string{"users", "payments"} {
		var exists bool
		err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	_, err = pool.Exec(ctx, "INSERT INTO users (user_id, coins) VALUES (1, 2147483648)")
	assert.Error(t, err, "coins above the balance ceiling violate the check constraint")
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "://not a dsn", 2, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}
