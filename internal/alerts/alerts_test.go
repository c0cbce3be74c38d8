package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-init-do/solosphere/internal/config"
	"github.com/sudo-init-do/solosphere/internal/logger"
	"github.com/sudo-init-do/solosphere/internal/marketplace"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Queue: QueueEmails, Type: task.Type()}, nil
}

type fakeMailer struct {
	sent []EmailEnvelope
	err  error
}

func (f *fakeMailer) Send(_ context.Context, env EmailEnvelope) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, env)
	return nil
}

var (
	testJob = marketplace.Job{ID: "job-1", Title: "Logo Design", Buyer: marketplace.Buyer{Email: "owner@x.com"}}
	testBid = marketplace.Bid{
		ID: "bid-1", JobID: "job-1", JobTitle: "Logo Design", Buyer: "owner@x.com", Email: "a@x.com",
		Price: 100, Deadline: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), Status: marketplace.StatusInProgress,
	}
)

func TestNotifierEnqueuesEmails(t *testing.T) {
	q := &fakeEnqueuer{}
	n := NewNotifier(q)
	ctx := context.Background()

	require.NoError(t, n.BidPlaced(ctx, testJob, testBid))
	require.NoError(t, n.BidStatusChanged(ctx, testBid, marketplace.StatusPending))
	require.Len(t, q.tasks, 2)

	assert.Equal(t, TaskBidPlaced, q.tasks[0].Type())
	var placed BidPlacedPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &placed))
	assert.Equal(t, "owner@x.com", placed.Envelope.To)
	assert.Equal(t, "New bid on Logo Design", placed.Envelope.Subject)
	assert.Contains(t, placed.Envelope.Body, "a@x.com offered 100.00")

	assert.Equal(t, TaskBidStatusChanged, q.tasks[1].Type())
	var changed BidStatusChangedPayload
	require.NoError(t, json.Unmarshal(q.tasks[1].Payload(), &changed))
	assert.Equal(t, "a@x.com", changed.Envelope.To)
	assert.Equal(t, "Your bid on Logo Design is now In Progress", changed.Envelope.Subject)
	assert.Equal(t, "Pending", changed.Previous)
}

func TestNotifierReportsEnqueueFailure(t *testing.T) {
	n := NewNotifier(&fakeEnqueuer{err: errors.New("redis: connection refused")})
	err := n.BidPlaced(context.Background(), testJob, testBid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), TaskBidPlaced)
}

func TestProcessorDeliversThroughMailer(t *testing.T) {
	q := &fakeEnqueuer{}
	n := NewNotifier(q)
	ctx := context.Background()
	require.NoError(t, n.BidPlaced(ctx, testJob, testBid))
	require.NoError(t, n.BidStatusChanged(ctx, testBid, marketplace.StatusPending))

	mailer := &fakeMailer{}
	p := &Processor{mailer: mailer, log: logger.Nop()}
	mux := asynq.NewServeMux()
	p.Register(mux)

	for _, task := range q.tasks {
		require.NoError(t, mux.ProcessTask(ctx, task))
	}
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "owner@x.com", mailer.sent[0].To)
	assert.Equal(t, "a@x.com", mailer.sent[1].To)
}

func TestProcessorErrors(t *testing.T) {
	ctx := context.Background()

	p := &Processor{mailer: &fakeMailer{}, log: logger.Nop()}
	err := p.handleBidPlaced(ctx, asynq.NewTask(TaskBidPlaced, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	boom := errors.New("smtp auth: 535")
	p = &Processor{mailer: &fakeMailer{err: boom}, log: logger.Nop()}
	payload, err := json.Marshal(BidStatusChangedPayload{BidID: "bid-1", Envelope: EmailEnvelope{To: "a@x.com"}})
	require.NoError(t, err)
	err = p.handleBidStatusChanged(ctx, asynq.NewTask(TaskBidStatusChanged, payload))
	assert.ErrorIs(t, err, boom)
}

func TestNewMailer(t *testing.T) {
	_, ok := NewMailer(config.SMTPConfig{}, logger.Nop()).(*LogMailer)
	assert.True(t, ok)
	_, ok = NewMailer(config.SMTPConfig{Host: "smtp.example.com", Port: "465"}, logger.Nop()).(*SMTPMailer)
	assert.True(t, ok)

	assert.NoError(t, NewMailer(config.SMTPConfig{}, logger.Nop()).Send(context.Background(), EmailEnvelope{To: "a@x.com"}))
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("no-reply@solosphere.local", EmailEnvelope{To: "a@x.com", Subject: "Hi", Body: "Body"})
	assert.True(t, strings.HasPrefix(msg, "From: no-reply@solosphere.local\r\nTo: a@x.com\r\nSubject: Hi\r\n"))
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nBody\r\n"))
}
