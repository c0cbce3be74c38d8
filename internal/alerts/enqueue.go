package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sudo-init-do/solosphere/internal/marketplace"
)

var _ marketplace.Notifier = (*Notifier)(nil)

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier turns marketplace events into email tasks on the emails queue.
type Notifier struct {
	client Enqueuer
	now    func() time.Time
}

func NewNotifier(client Enqueuer) *Notifier {
	return &Notifier{client: client, now: time.Now}
}

// BidPlaced schedules a "new bid" email to the job owner
func (n *Notifier) BidPlaced(ctx context.Context, job marketplace.Job, bid marketplace.Bid) error {
	env := EmailEnvelope{
		To:      job.Buyer.Email,
		Subject: fmt.Sprintf("New bid on %s", job.Title),
		Body: fmt.Sprintf("%s offered %.2f for \"%s\" with a deadline of %s.\n\n%s",
			bid.Email, bid.Price, job.Title, bid.Deadline.Format("2006-01-02"), bid.Comment),
	}
	payload := BidPlacedPayload{
		BidID:    bid.ID,
		JobID:    job.ID,
		JobTitle: job.Title,
		Bidder:   bid.Email,
		Price:    bid.Price,
		Envelope: env,
		SentAt:   n.now(),
	}
	return n.enqueue(ctx, TaskBidPlaced, payload)
}

// BidStatusChanged schedules a status update email to the bidder
func (n *Notifier) BidStatusChanged(ctx context.Context, bid marketplace.Bid, previous marketplace.Status) error {
	env := EmailEnvelope{
		To:      bid.Email,
		Subject: fmt.Sprintf("Your bid on %s is now %s", bid.JobTitle, bid.Status),
		Body:    fmt.Sprintf("Your bid on \"%s\" moved from %s to %s.", bid.JobTitle, previous, bid.Status),
	}
	payload := BidStatusChangedPayload{
		BidID:    bid.ID,
		JobID:    bid.JobID,
		JobTitle: bid.JobTitle,
		Previous: string(previous),
		Status:   string(bid.Status),
		Envelope: env,
		SentAt:   n.now(),
	}
	return n.enqueue(ctx, TaskBidStatusChanged, payload)
}

func (n *Notifier) enqueue(ctx context.Context, taskType string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	task := asynq.NewTask(taskType, b)
	if _, err := n.client.EnqueueContext(ctx, task, asynq.Queue(QueueEmails), asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}
