package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sudo-init-do/solosphere/internal/config"
	"github.com/sudo-init-do/solosphere/internal/data"
	"github.com/sudo-init-do/solosphere/internal/db"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

const usage = "usage: go run ./cmd/adminutil/recount_bids [-job <uuid>] [-timeout 1m]"

func main() {
	jobID := flag.String("job", "", "ID of the job to recount (default: all jobs)")
	timeout := flag.Duration("timeout", time.Minute, "Maximum time to spend")
	flag.Parse()

	if err := validateJobID(*jobID); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", usage, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	lg, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	changed, err := run(cfg, lg, *jobID, *timeout)
	if err != nil {
		lg.Fatal("failed to recount bids", "job", *jobID, "error", err)
	}

	if *jobID != "" && changed == 0 {
		fmt.Printf("Job %s already has the correct bid count (or does not exist).\n", *jobID)
		return
	}
	fmt.Printf("Recounted bids: %d job(s) updated.\n", changed)
}

// validateJobID accepts an empty id (all jobs) or a UUID.
func validateJobID(id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid job id %q", id)
	}
	return nil
}

func run(cfg *config.Config, lg *logger.Logger, jobID string, timeout time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Connects and ensures the schema (idempotent)
	pool, err := db.Open(ctx, cfg.DB, lg)
	if err != nil {
		return 0, fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	changed, err := data.NewStore(pool).RecountBids(ctx, jobID)
	if err != nil {
		return 0, err
	}
	lg.Info("bid counts recounted", "job", jobID, "changed", changed)
	return changed, nil
}
