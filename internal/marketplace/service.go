package marketplace

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sudo-init-do/solosphere/internal/apperr"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

// MaxPageSize caps the size query parameter of job listings.
const MaxPageSize = 100

// Service enforces ownership and bid lifecycle rules on top of a Store.
type Service struct {
	store    Store
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, used for deadline checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, notifier Notifier, log *logger.Logger, opts ...Option) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{store: store, notifier: notifier, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeEmail lowercases and trims an email for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validID reports whether id can name a stored record. Anything else cannot
// exist, so lookups short-circuit to not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Ping checks the backing store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// =========================
// Jobs
// =========================

func (s *Service) ListJobs(ctx context.Context, f JobFilter) ([]Job, error) {
	f, err := s.sanitizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.store.ListJobs(ctx, f)
}

func (s *Service) CountJobs(ctx context.Context, f JobFilter) (int, error) {
	f, err := s.sanitizeFilter(f)
	if err != nil {
		return 0, err
	}
	return s.store.CountJobs(ctx, f)
}

func (s *Service) sanitizeFilter(f JobFilter) (JobFilter, error) {
	if f.Category != "" && !f.Category.Valid() {
		return f, apperr.ValidationField("filter", "unknown category")
	}
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f, nil
}

// GetJob returns the job or an apperr not_found error.
func (s *Service) GetJob(ctx context.Context, id string) (*Job, error) {
	if !validID(id) {
		return nil, apperr.NotFound("job not found")
	}
	return s.store.GetJob(ctx, id)
}

func (s *Service) ListJobsByOwner(ctx context.Context, email string) ([]Job, error) {
	return s.store.ListJobsByOwner(ctx, NormalizeEmail(email))
}

// CreateJob stores a job owned by caller. A buyer email in the payload must
// match the caller; name and photo are taken as given.
func (s *Service) CreateJob(ctx context.Context, caller string, buyer Buyer, f JobFields) (*Job, error) {
	caller = NormalizeEmail(caller)
	if caller == "" {
		return nil, apperr.Unauthorized("unauthorized access")
	}
	if email := NormalizeEmail(buyer.Email); email != "" && email != caller {
		return nil, apperr.Forbidden("cannot post a job on behalf of another user")
	}
	f, err := validateJobFields(f)
	if err != nil {
		return nil, err
	}

	job := &Job{
		Title:       f.Title,
		Buyer:       Buyer{Email: caller, Name: strings.TrimSpace(buyer.Name), Photo: strings.TrimSpace(buyer.Photo)},
		Deadline:    f.Deadline,
		Category:    f.Category,
		MinPrice:    f.MinPrice,
		MaxPrice:    f.MaxPrice,
		Description: f.Description,
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	s.log.Info("job created", "job_id", job.ID, "owner", caller)
	return job, nil
}

// UpdateJob replaces the editable fields of a job owned by caller.
func (s *Service) UpdateJob(ctx context.Context, caller, id string, f JobFields) (*Job, error) {
	if _, err := s.ownedJob(ctx, caller, id); err != nil {
		return nil, err
	}
	f, err := validateJobFields(f)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateJob(ctx, id, f)
}

// DeleteJob removes a job owned by caller. Bids on it are left in place.
func (s *Service) DeleteJob(ctx context.Context, caller, id string) error {
	if _, err := s.ownedJob(ctx, caller, id); err != nil {
		return err
	}
	if err := s.store.DeleteJob(ctx, id); err != nil {
		return err
	}
	s.log.Info("job deleted", "job_id", id, "owner", NormalizeEmail(caller))
	return nil
}

func (s *Service) ownedJob(ctx context.Context, caller, id string) (*Job, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if NormalizeEmail(caller) != NormalizeEmail(job.Buyer.Email) {
		return nil, apperr.Forbidden("only the job owner can modify this job")
	}
	return job, nil
}

func validateJobFields(f JobFields) (JobFields, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	switch {
	case f.Title == "":
		return f, apperr.ValidationField("jobTitle", "job title is required")
	case !f.Category.Valid():
		return f, apperr.ValidationField("category", "unknown category")
	case f.Deadline.IsZero():
		return f, apperr.ValidationField("deadline", "deadline is required")
	case f.MinPrice < 0:
		return f, apperr.ValidationField("minPrice", "minimum price cannot be negative")
	case f.MaxPrice < f.MinPrice:
		return f, apperr.ValidationField("maxPrice", "maximum price must not be below minimum price")
	}
	return f, nil
}

// =========================
// Bids
// =========================

// BidInput is a new bid as submitted by a bidder.
type BidInput struct {
	JobID    string
	Email    string
	Price    float64
	Comment  string
	Deadline time.Time
}

// PlaceBid creates a Pending bid from caller and bumps the job's bid count.
func (s *Service) PlaceBid(ctx context.Context, caller string, in BidInput) (*Bid, error) {
	caller = NormalizeEmail(caller)
	if caller == "" {
		return nil, apperr.Unauthorized("unauthorized access")
	}
	if email := NormalizeEmail(in.Email); email != "" && email != caller {
		return nil, apperr.Forbidden("cannot bid on behalf of another user")
	}

	job, err := s.GetJob(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if NormalizeEmail(job.Buyer.Email) == caller {
		return nil, apperr.Validation("Action not permitted! You cannot bid on your own job.")
	}
	if s.now().After(job.Deadline) {
		return nil, apperr.Validation("Action not permitted! The job deadline has passed.")
	}
	if in.Price <= 0 {
		return nil, apperr.ValidationField("price", "price must be positive")
	}
	if in.Price < job.MinPrice {
		return nil, apperr.ValidationField("price", "offer at least the minimum price")
	}
	if in.Deadline.IsZero() {
		return nil, apperr.ValidationField("deadline", "deadline is required")
	}

	bid := &Bid{
		JobID:    job.ID,
		JobTitle: job.Title,
		Category: job.Category,
		Buyer:    NormalizeEmail(job.Buyer.Email),
		Email:    caller,
		Price:    in.Price,
		Comment:  strings.TrimSpace(in.Comment),
		Deadline: in.Deadline,
		Status:   StatusPending,
	}
	if err := s.store.CreateBid(ctx, bid); err != nil {
		return nil, err
	}
	s.log.Info("bid placed", "bid_id", bid.ID, "job_id", job.ID, "bidder", caller)

	if err := s.notifier.BidPlaced(ctx, *job, *bid); err != nil {
		s.log.Warn("bid placed notification failed", "bid_id", bid.ID, "error", err)
	}
	return bid, nil
}

// ListBids returns bids placed by email, or with asBuyer the bid requests on
// jobs email owns.
func (s *Service) ListBids(ctx context.Context, email string, asBuyer bool) ([]Bid, error) {
	email = NormalizeEmail(email)
	if asBuyer {
		return s.store.ListBidsByBuyer(ctx, email)
	}
	return s.store.ListBidsByBidder(ctx, email)
}

func (s *Service) getBid(ctx context.Context, id string) (*Bid, error) {
	if !validID(id) {
		return nil, apperr.NotFound("bid not found")
	}
	return s.store.GetBid(ctx, id)
}

// UpdateBidTerms lets the bidder change price, comment and deadline while the
// bid is not terminal.
func (s *Service) UpdateBidTerms(ctx context.Context, caller, id string, t BidTerms) (*Bid, error) {
	bid, err := s.getBid(ctx, id)
	if err != nil {
		return nil, err
	}
	if ActorFor(*bid, caller) != ActorBidder {
		return nil, apperr.Forbidden("only the bidder can edit this bid")
	}
	if err := CheckTermsEditable(*bid); err != nil {
		return nil, err
	}
	if t.Price <= 0 {
		return nil, apperr.ValidationField("price", "price must be positive")
	}
	if t.Deadline.IsZero() {
		return nil, apperr.ValidationField("deadline", "deadline is required")
	}
	t.Comment = strings.TrimSpace(t.Comment)
	return s.store.UpdateBidTerms(ctx, id, t)
}

// ChangeBidStatus applies the lifecycle rules for caller's role on the bid and
// writes the new status with a compare-and-swap on the current one.
func (s *Service) ChangeBidStatus(ctx context.Context, caller, id string, to Status) (*Bid, error) {
	bid, err := s.getBid(ctx, id)
	if err != nil {
		return nil, err
	}
	actor := ActorFor(*bid, caller)
	if err := CheckTransition(actor, bid.Status, to); err != nil {
		s.log.Debug("bid status change refused", "bid_id", id, "actor", actor.String(), "from", bid.Status, "to", to)
		return nil, err
	}

	previous := bid.Status
	updated, err := s.store.UpdateBidStatus(ctx, id, previous, to)
	if err != nil {
		return nil, err
	}
	s.log.Info("bid status changed", "bid_id", id, "actor", actor.String(), "from", previous, "to", to)

	if err := s.notifier.BidStatusChanged(ctx, *updated, previous); err != nil {
		s.log.Warn("bid status notification failed", "bid_id", id, "error", err)
	}
	return updated, nil
}
