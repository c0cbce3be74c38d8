// Package data holds the Postgres implementation of marketplace.Store.
package data

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/solosphere/internal/apperr"
	"github.com/sudo-init-do/solosphere/internal/marketplace"
)

var _ marketplace.Store = (*Store)(nil)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

var _ DB = (*pgxpool.Pool)(nil)

type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

const jobColumns = `id::text, title, owner_email, owner_name, owner_photo, deadline, category,
    min_price, max_price, description, bid_count, created_at, updated_at`

const bidColumns = `id::text, job_id::text, job_title, category, buyer_email, email, price,
    comment, deadline, status, created_at, updated_at`

// pgTime matches what TIMESTAMPTZ stores and returns: microsecond precision, UTC.
func pgTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func scanJob(row pgx.Row) (*marketplace.Job, error) {
	var j marketplace.Job
	var category string
	err := row.Scan(&j.ID, &j.Title, &j.Buyer.Email, &j.Buyer.Name, &j.Buyer.Photo, &j.Deadline, &category,
		&j.MinPrice, &j.MaxPrice, &j.Description, &j.BidCount, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.Category = marketplace.Category(category)
	j.Deadline, j.CreatedAt, j.UpdatedAt = j.Deadline.UTC(), j.CreatedAt.UTC(), j.UpdatedAt.UTC()
	return &j, nil
}

func scanBid(row pgx.Row) (*marketplace.Bid, error) {
	var b marketplace.Bid
	var category, status string
	err := row.Scan(&b.ID, &b.JobID, &b.JobTitle, &category, &b.Buyer, &b.Email, &b.Price,
		&b.Comment, &b.Deadline, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Category = marketplace.Category(category)
	b.Status = marketplace.Status(status)
	b.Deadline, b.CreatedAt, b.UpdatedAt = b.Deadline.UTC(), b.CreatedAt.UTC(), b.UpdatedAt.UTC()
	return &b, nil
}

func collectJobs(rows pgx.Rows) ([]marketplace.Job, error) {
	defer rows.Close()
	jobs := []marketplace.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, apperr.MapDBError(err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, apperr.MapDBError(rows.Err())
}

func collectBids(rows pgx.Rows) ([]marketplace.Bid, error) {
	defer rows.Close()
	bids := []marketplace.Bid{}
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, apperr.MapDBError(err)
		}
		bids = append(bids, *b)
	}
	return bids, apperr.MapDBError(rows.Err())
}

// notFound turns pgx.ErrNoRows into a not_found error naming the entity.
func notFound(err error, entity string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Wrap(err, apperr.ErrCodeNotFound, entity+" not found")
	}
	return apperr.MapDBError(err)
}

func (s *Store) Ping(ctx context.Context) error {
	return apperr.MapDBError(s.db.Ping(ctx))
}

// =========================
// Jobs
// =========================

// escapeLike escapes LIKE wildcards so the search term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// jobWhere renders the filter's WHERE clause with $n placeholders starting at 1.
func jobWhere(f marketplace.JobFilter) (string, []any) {
	var where []string
	var args []any
	if f.Category != "" {
		args = append(args, string(f.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		where = append(where, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func buildListJobsQuery(f marketplace.JobFilter) (string, []any) {
	where, args := jobWhere(f)
	query := "SELECT " + jobColumns + " FROM jobs" + where + " ORDER BY "
	switch f.Sort {
	case marketplace.SortDeadlineAsc:
		query += "deadline ASC, id"
	case marketplace.SortDeadlineDesc:
		query += "deadline DESC, id"
	default:
		query += "created_at DESC, id"
	}
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return query, args
}

func (s *Store) ListJobs(ctx context.Context, f marketplace.JobFilter) ([]marketplace.Job, error) {
	query, args := buildListJobsQuery(f)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.MapDBError(err)
	}
	return collectJobs(rows)
}

func (s *Store) CountJobs(ctx context.Context, f marketplace.JobFilter) (int, error) {
	where, args := jobWhere(f)
	var n int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM jobs"+where, args...).Scan(&n); err != nil {
		return 0, apperr.MapDBError(err)
	}
	return n, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*marketplace.Job, error) {
	job, err := scanJob(s.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "job")
	}
	return job, nil
}

func (s *Store) ListJobsByOwner(ctx context.Context, email string) ([]marketplace.Job, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE owner_email = $1 ORDER BY created_at DESC, id`, email)
	if err != nil {
		return nil, apperr.MapDBError(err)
	}
	return collectJobs(rows)
}

func (s *Store) CreateJob(ctx context.Context, job *marketplace.Job) error {
	job.ID = uuid.NewString()
	job.BidCount = 0
	job.Deadline = pgTime(job.Deadline)
	err := s.db.QueryRow(ctx,
		`INSERT INTO jobs (id, title, owner_email, owner_name, owner_photo, deadline, category,
                           min_price, max_price, description, bid_count)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0)
         RETURNING created_at, updated_at`,
		job.ID, job.Title, job.Buyer.Email, job.Buyer.Name, job.Buyer.Photo, job.Deadline, string(job.Category),
		job.MinPrice, job.MaxPrice, job.Description,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	job.CreatedAt, job.UpdatedAt = job.CreatedAt.UTC(), job.UpdatedAt.UTC()
	return apperr.MapDBError(err)
}

func (s *Store) UpdateJob(ctx context.Context, id string, f marketplace.JobFields) (*marketplace.Job, error) {
	job, err := scanJob(s.db.QueryRow(ctx,
		`UPDATE jobs
         SET title = $2, deadline = $3, category = $4, min_price = $5, max_price = $6,
             description = $7, updated_at = NOW()
         WHERE id = $1
         RETURNING `+jobColumns,
		id, f.Title, pgTime(f.Deadline), string(f.Category), f.MinPrice, f.MaxPrice, f.Description,
	))
	if err != nil {
		return nil, notFound(err, "job")
	}
	return job, nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return apperr.MapDBError(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("job not found")
	}
	return nil
}

// =========================
// Bids
// =========================

// CreateBid inserts the bid and increments the job's bid_count in one
// transaction. The unique constraint on (job_id, email) rejects duplicates even
// when two requests race.
func (s *Store) CreateBid(ctx context.Context, bid *marketplace.Bid) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperr.MapDBError(err)
	}
	defer tx.Rollback(ctx)

	id := uuid.NewString()
	bid.Deadline = pgTime(bid.Deadline)
	var createdAt, updatedAt time.Time
	err = tx.QueryRow(ctx,
		`INSERT INTO bids (id, job_id, job_title, category, buyer_email, email, price, comment, deadline, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING created_at, updated_at`,
		id, bid.JobID, bid.JobTitle, string(bid.Category), bid.Buyer, bid.Email, bid.Price, bid.Comment,
		bid.Deadline, string(bid.Status),
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return apperr.MapDBError(err)
	}

	ct, err := tx.Exec(ctx, `UPDATE jobs SET bid_count = bid_count + 1 WHERE id = $1`, bid.JobID)
	if err != nil {
		return apperr.MapDBError(err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("job not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.MapDBError(err)
	}
	bid.ID, bid.CreatedAt, bid.UpdatedAt = id, createdAt.UTC(), updatedAt.UTC()
	return nil
}

func (s *Store) GetBid(ctx context.Context, id string) (*marketplace.Bid, error) {
	bid, err := scanBid(s.db.QueryRow(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "bid")
	}
	return bid, nil
}

func (s *Store) ListBidsByBidder(ctx context.Context, email string) ([]marketplace.Bid, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE email = $1 ORDER BY created_at DESC, id`, email)
	if err != nil {
		return nil, apperr.MapDBError(err)
	}
	return collectBids(rows)
}

func (s *Store) ListBidsByBuyer(ctx context.Context, email string) ([]marketplace.Bid, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE buyer_email = $1 ORDER BY created_at DESC, id`, email)
	if err != nil {
		return nil, apperr.MapDBError(err)
	}
	return collectBids(rows)
}

func (s *Store) UpdateBidTerms(ctx context.Context, id string, t marketplace.BidTerms) (*marketplace.Bid, error) {
	bid, err := scanBid(s.db.QueryRow(ctx,
		`UPDATE bids
         SET price = $2, comment = $3, deadline = $4, updated_at = NOW()
         WHERE id = $1 AND status IN ('Pending', 'In Progress')
         RETURNING `+bidColumns,
		id, t.Price, t.Comment, pgTime(t.Deadline),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.StaleStatus()
	}
	if err != nil {
		return nil, apperr.MapDBError(err)
	}
	return bid, nil
}

func (s *Store) UpdateBidStatus(ctx context.Context, id string, from, to marketplace.Status) (*marketplace.Bid, error) {
	bid, err := scanBid(s.db.QueryRow(ctx,
		`UPDATE bids SET status = $3, updated_at = NOW()
         WHERE id = $1 AND status = $2
         RETURNING `+bidColumns,
		id, string(from), string(to),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.StaleStatus()
	}
	if err != nil {
		return nil, apperr.MapDBError(err)
	}
	return bid, nil
}

// RecountBids resets bid_count to the number of bid rows for jobID, or for every
// job when jobID is empty, and returns the number of jobs corrected.
func (s *Store) RecountBids(ctx context.Context, jobID string) (int64, error) {
	query := `
        UPDATE jobs j SET bid_count = c.n, updated_at = NOW()
        FROM (
            SELECT jobs.id, COUNT(bids.id)::int AS n
            FROM jobs LEFT JOIN bids ON bids.job_id = jobs.id
            GROUP BY jobs.id
        ) c
        WHERE j.id = c.id AND j.bid_count <> c.n`
	var args []any
	if jobID != "" {
		query += ` AND j.id = $1`
		args = append(args, jobID)
	}
	ct, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, apperr.MapDBError(err)
	}
	return ct.RowsAffected(), nil
}
