// Package memstore is an in-process marketplace.Store used by STORAGE=memory and
// by tests. It gives the same guarantees as the Postgres store: unique
// (job, bidder) bids and an atomic bid insert plus bid count increment.
package memstore

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sudo-init-do/solosphere/internal/apperr"
	"github.com/sudo-init-do/solosphere/internal/marketplace"
)

var _ marketplace.Store = (*Store)(nil)

type Store struct {
	mu       sync.RWMutex
	jobs     map[string]*marketplace.Job
	jobOrder []string
	bids     map[string]*marketplace.Bid
	bidOrder []string
	// bidKeys indexes bid ids by job id + bidder email.
	bidKeys map[bidKey]string
	now     func() time.Time
}

type bidKey struct {
	jobID string
	email string
}

func New() *Store {
	return &Store{
		jobs:    make(map[string]*marketplace.Job),
		bids:    make(map[string]*marketplace.Bid),
		bidKeys: make(map[bidKey]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) ListJobs(ctx context.Context, f marketplace.JobFilter) ([]marketplace.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.MapDBError(err)
	}
	s.mu.RLock()
	matched := s.filterJobs(f)
	s.mu.RUnlock()

	switch f.Sort {
	case marketplace.SortDeadlineAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Deadline.Before(matched[j].Deadline) })
	case marketplace.SortDeadlineDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Deadline.After(matched[j].Deadline) })
	}

	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return []marketplace.Job{}, nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (s *Store) CountJobs(ctx context.Context, f marketplace.JobFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperr.MapDBError(err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.filterJobs(f)), nil
}

// filterJobs returns matching jobs newest first. Caller holds the read lock.
func (s *Store) filterJobs(f marketplace.JobFilter) []marketplace.Job {
	search := strings.ToLower(f.Search)
	out := make([]marketplace.Job, 0, len(s.jobOrder))
	for i := len(s.jobOrder) - 1; i >= 0; i-- {
		job, ok := s.jobs[s.jobOrder[i]]
		if !ok {
			continue
		}
		if f.Category != "" && job.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(job.Title), search) {
			continue
		}
		out = append(out, *job)
	}
	return out
}

func (s *Store) GetJob(ctx context.Context, id string) (*marketplace.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.MapDBError(err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, apperr.NotFound("job not found")
	}
	cp := *job
	return &cp, nil
}

func (s *Store) ListJobsByOwner(ctx context.Context, email string) ([]marketplace.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.MapDBError(err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []marketplace.Job{}
	for i := len(s.jobOrder) - 1; i >= 0; i-- {
		if job, ok := s.jobs[s.jobOrder[i]]; ok && job.Buyer.Email == email {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (s *Store) CreateJob(ctx context.Context, job *marketplace.Job) error {
	if err := ctx.Err(); err != nil {
		return apperr.MapDBError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	job.ID = uuid.NewString()
	job.BidCount = 0
	job.CreatedAt, job.UpdatedAt = now, now
	cp := *job
	s.jobs[job.ID] = &cp
	s.jobOrder = append(s.jobOrder, job.ID)
	return nil
}

func (s *Store) UpdateJob(ctx context.Context, id string, f marketplace.JobFields) (*marketplace.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.MapDBError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, apperr.NotFound("job not found")
	}
	job.Title = f.Title
	job.Deadline = f.Deadline
	job.Category = f.Category
	job.MinPrice = f.MinPrice
	job.MaxPrice = f.MaxPrice
	job.Description = f.Description
	job.UpdatedAt = s.now()
	cp := *job
	return &cp, nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return apperr.MapDBError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return apperr.NotFound("job not found")
	}
	delete(s.jobs, id)
	if i := slices.Index(s.jobOrder, id); i >= 0 {
		s.jobOrder = slices.Delete(s.jobOrder, i, i+1)
	}
	return nil
}

func (s *Store) CreateBid(ctx context.Context, bid *marketplace.Bid) error {
	if err := ctx.Err(); err != nil {
		return apperr.MapDBError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bidKey{jobID: bid.JobID, email: bid.Email}
	if _, dup := s.bidKeys[key]; dup {
		return apperr.DuplicateBid()
	}
	job, ok := s.jobs[bid.JobID]
	if !ok {
		return apperr.NotFound("job not found")
	}

	now := s.now()
	bid.ID = uuid.NewString()
	bid.CreatedAt, bid.UpdatedAt = now, now
	cp := *bid
	s.bids[bid.ID] = &cp
	s.bidOrder = append(s.bidOrder, bid.ID)
	s.bidKeys[key] = bid.ID
	job.BidCount++
	return nil
}

func (s *Store) GetBid(ctx context.Context, id string) (*marketplace.Bid, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.MapDBError(err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	bid, ok := s.bids[id]
	if !ok {
		return nil, apperr.NotFound("bid not found")
	}
	cp := *bid
	return &cp, nil
}

func (s *Store) ListBidsByBidder(ctx context.Context, email string) ([]marketplace.Bid, error) {
	return s.listBids(ctx, func(b *marketplace.Bid) bool { return b.Email == email })
}

func (s *Store) ListBidsByBuyer(ctx context.Context, email string) ([]marketplace.Bid, error) {
	return s.listBids(ctx, func(b *marketplace.Bid) bool { return b.Buyer == email })
}

func (s *Store) listBids(ctx context.Context, keep func(*marketplace.Bid) bool) ([]marketplace.Bid, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.MapDBError(err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []marketplace.Bid{}
	for i := len(s.bidOrder) - 1; i >= 0; i-- {
		if bid := s.bids[s.bidOrder[i]]; keep(bid) {
			out = append(out, *bid)
		}
	}
	return out, nil
}

func (s *Store) UpdateBidTerms(ctx context.Context, id string, t marketplace.BidTerms) (*marketplace.Bid, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.MapDBError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bid, ok := s.bids[id]
	if !ok {
		return nil, apperr.NotFound("bid not found")
	}
	if bid.Status.Terminal() {
		return nil, apperr.StaleStatus()
	}
	bid.Price = t.Price
	bid.Comment = t.Comment
	bid.Deadline = t.Deadline
	bid.UpdatedAt = s.now()
	cp := *bid
	return &cp, nil
}

func (s *Store) UpdateBidStatus(ctx context.Context, id string, from, to marketplace.Status) (*marketplace.Bid, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.MapDBError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bid, ok := s.bids[id]
	if !ok {
		return nil, apperr.NotFound("bid not found")
	}
	if bid.Status != from {
		return nil, apperr.StaleStatus()
	}
	bid.Status = to
	bid.UpdatedAt = s.now()
	cp := *bid
	return &cp, nil
}

// RecountBids resets each job's bid count (or only jobID's when non-empty) to
// the number of stored bids, returning how many jobs changed.
func (s *Store) RecountBids(ctx context.Context, jobID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperr.MapDBError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int, len(s.jobs))
	for _, bid := range s.bids {
		counts[bid.JobID]++
	}
	var changed int64
	for id, job := range s.jobs {
		if jobID != "" && id != jobID {
			continue
		}
		if job.BidCount != counts[id] {
			job.BidCount = counts[id]
			changed++
		}
	}
	return changed, nil
}
