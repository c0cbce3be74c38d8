package marketplace

import "context"

// Store persists jobs and bids. Implementations report absence with an
// apperr not_found error and must make CreateBid atomic: the bid insert and the
// job's bid_count increment either both happen or neither does, and a second bid
// for the same (JobID, Email) fails with apperr.DuplicateBid.
type Store interface {
	Ping(ctx context.Context) error

	ListJobs(ctx context.Context, f JobFilter) ([]Job, error)
	CountJobs(ctx context.Context, f JobFilter) (int, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobsByOwner(ctx context.Context, email string) ([]Job, error)
	// CreateJob assigns ID and timestamps and forces BidCount to zero.
	CreateJob(ctx context.Context, job *Job) error
	UpdateJob(ctx context.Context, id string, f JobFields) (*Job, error)
	DeleteJob(ctx context.Context, id string) error

	// CreateBid assigns ID and timestamps.
	CreateBid(ctx context.Context, bid *Bid) error
	GetBid(ctx context.Context, id string) (*Bid, error)
	ListBidsByBidder(ctx context.Context, email string) ([]Bid, error)
	ListBidsByBuyer(ctx context.Context, email string) ([]Bid, error)
	// UpdateBidTerms fails with apperr.StaleStatus if the bid became terminal.
	UpdateBidTerms(ctx context.Context, id string, t BidTerms) (*Bid, error)
	// UpdateBidStatus writes to only if the stored status still equals from,
	// otherwise it fails with apperr.StaleStatus.
	UpdateBidStatus(ctx context.Context, id string, from, to Status) (*Bid, error)
}

// Notifier is told about bid events after they are committed. Errors are logged
// by the caller and never undo the operation.
type Notifier interface {
	BidPlaced(ctx context.Context, job Job, bid Bid) error
	BidStatusChanged(ctx context.Context, bid Bid, previous Status) error
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) BidPlaced(context.Context, Job, Bid) error            { return nil }
func (NopNotifier) BidStatusChanged(context.Context, Bid, Status) error { return nil }
