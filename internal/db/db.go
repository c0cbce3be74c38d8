package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/solosphere/internal/config"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

// Open connects to Postgres, verifies the connection and ensures the schema.
// The caller owns the returned pool and must Close it.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	log.Info("connected to Postgres", "host", cfg.Host, "database", cfg.Name)

	if err := EnsureSchema(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema creates the jobs and bids tables and their indexes if missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	if err := ensureJobsTable(ctx, pool); err != nil {
		return err
	}
	if err := ensureBidsTable(ctx, pool); err != nil {
		return err
	}
	log.Debug("schema ensured")
	return nil
}

// ensureJobsTable creates jobs. bid_count is only ever changed by bid creation
// and the recount utility.
func ensureJobsTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS jobs (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            owner_email TEXT NOT NULL,
            owner_name TEXT NOT NULL DEFAULT '',
            owner_photo TEXT NOT NULL DEFAULT '',
            deadline TIMESTAMPTZ NOT NULL,
            category TEXT NOT NULL CHECK (category IN ('Web Development', 'Graphics Design', 'Digital Marketing')),
            min_price DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (min_price >= 0),
            max_price DOUBLE PRECISION NOT NULL DEFAULT 0,
            description TEXT NOT NULL DEFAULT '',
            bid_count INTEGER NOT NULL DEFAULT 0 CHECK (bid_count >= 0),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE INDEX IF NOT EXISTS idx_jobs_owner_email ON jobs(owner_email);
        CREATE INDEX IF NOT EXISTS idx_jobs_category ON jobs(category);
        CREATE INDEX IF NOT EXISTS idx_jobs_deadline ON jobs(deadline);
    `)
	if err != nil {
		return fmt.Errorf("failed to create jobs table: %w", err)
	}
	return nil
}

// ensureBidsTable creates bids. job_id has no foreign key: bids outlive deleted
// jobs. bids_job_id_email_key allows one bid per job and bidder.
func ensureBidsTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS bids (
            id UUID PRIMARY KEY,
            job_id UUID NOT NULL,
            job_title TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            buyer_email TEXT NOT NULL,
            email TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL CHECK (price > 0),
            comment TEXT NOT NULL DEFAULT '',
            deadline TIMESTAMPTZ NOT NULL,
            status TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'In Progress', 'Completed', 'Rejected')),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT bids_job_id_email_key UNIQUE (job_id, email)
        );
        CREATE INDEX IF NOT EXISTS idx_bids_email ON bids(email);
        CREATE INDEX IF NOT EXISTS idx_bids_buyer_email ON bids(buyer_email);
    `)
	if err != nil {
		return fmt.Errorf("failed to create bids table: %w", err)
	}
	return nil
}
