package alerts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/sudo-init-do/solosphere/internal/config"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

// Processor runs the asynq server that delivers queued emails.
type Processor struct {
	server *asynq.Server
	mailer Mailer
	log    *logger.Logger
}

func NewProcessor(cfg config.AlertsConfig, mailer Mailer, log *logger.Logger) *Processor {
	server := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{QueueEmails: 10},
		Logger:      log.SugaredLogger,
	})
	return &Processor{server: server, mailer: mailer, log: log}
}

// Register routes every alert task type on mux.
func (p *Processor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskBidPlaced, p.handleBidPlaced)
	mux.HandleFunc(TaskBidStatusChanged, p.handleBidStatusChanged)
}

// Start begins processing in the background. Signals are left to the caller.
func (p *Processor) Start() error {
	mux := asynq.NewServeMux()
	p.Register(mux)
	if err := p.server.Start(mux); err != nil {
		return fmt.Errorf("start alerts processor: %w", err)
	}
	return nil
}

// Close waits for in-flight tasks and stops the server.
func (p *Processor) Close() {
	p.server.Shutdown()
}

func (p *Processor) handleBidPlaced(ctx context.Context, t *asynq.Task) error {
	var payload BidPlacedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	if err := p.mailer.Send(ctx, payload.Envelope); err != nil {
		p.log.Error("bid placed email failed", "bid_id", payload.BidID, "error", err)
		return err
	}
	p.log.Info("bid placed email sent", "bid_id", payload.BidID, "to", payload.Envelope.To)
	return nil
}

func (p *Processor) handleBidStatusChanged(ctx context.Context, t *asynq.Task) error {
	var payload BidStatusChangedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	if err := p.mailer.Send(ctx, payload.Envelope); err != nil {
		p.log.Error("bid status email failed", "bid_id", payload.BidID, "error", err)
		return err
	}
	p.log.Info("bid status email sent", "bid_id", payload.BidID, "status", payload.Status, "to", payload.Envelope.To)
	return nil
}
