package testutil

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/solosphere/internal/db"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

// TestDBConfig holds configuration for the test database.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DefaultTestDBConfig reads TEST_DB_* with defaults matching the local compose database.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "5432"),
		User:     getEnvOrDefault("TEST_DB_USER", "solosphere"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "solosphere"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "solosphere_test"),
	}
}

// DSN builds a postgres URL for cfg.
func (cfg TestDBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User, cfg.Password, net.JoinHostPort(cfg.Host, cfg.Port), cfg.DBName,
		getEnvOrDefault("TEST_DB_SSL_MODE", "disable"))
}

// TestingTB is an interface that covers both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// SkipIfNoTestDB skips the test if the test database is not reachable.
// TEST_REQUIRE_DB turns the skip into a failure.
func SkipIfNoTestDB(t TestingTB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, DefaultTestDBConfig().DSN())
	if err != nil {
		if requireDB() {
			t.Fatal("Test database not available:", err)
		}
		t.Skip("Test database not available:", err)
		return
	}
	defer pool.Close()

	if pingErr := pool.Ping(ctx); pingErr != nil {
		if requireDB() {
			t.Fatal("Test database not available:", pingErr)
		}
		t.Skip("Test database not available:", pingErr)
	}
}

// SetupTestPool connects to the test database, ensures the schema and
// removes leftover rows.
func SetupTestPool(t TestingTB) *pgxpool.Pool {
	t.Helper()
	SkipIfNoTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, DefaultTestDBConfig().DSN())
	if err != nil {
		t.Fatal("Failed to open database:", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatal("Failed to connect to test database. Make sure PostgreSQL is running (docker compose up -d):", err)
	}
	if err := db.EnsureSchema(ctx, pool, logger.Nop()); err != nil {
		pool.Close()
		t.Fatal("Failed to ensure schema:", err)
	}

	CleanupTestDB(t, pool)
	return pool
}

// CleanupTestDB removes all rows from the marketplace tables.
func CleanupTestDB(t TestingTB, pool *pgxpool.Pool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "DELETE FROM bids"); err != nil {
		t.Fatalf("Failed to clean up table bids: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM jobs"); err != nil {
		t.Fatalf("Failed to clean up table jobs: %v", err)
	}
}

// TeardownTestPool cleans up and closes the pool.
func TeardownTestPool(t TestingTB, pool *pgxpool.Pool) {
	t.Helper()
	if pool != nil {
		CleanupTestDB(t, pool)
		pool.Close()
	}
}

// WithTestPool sets up a test database, runs fn and tears it down.
func WithTestPool(t TestingTB, fn func(*pgxpool.Pool)) {
	t.Helper()
	pool := SetupTestPool(t)
	defer TeardownTestPool(t, pool)
	fn(pool)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

func requireDB() bool { return envBool("TEST_REQUIRE_DB") }
