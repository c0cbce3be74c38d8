package alerts

import "time"

// Task type constants
const (
	TaskBidPlaced        = "email:bid_placed"
	TaskBidStatusChanged = "email:bid_status_changed"
)

// QueueEmails is the asynq queue every alert is enqueued on.
const QueueEmails = "emails"

// Common envelope for email-like notifications
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Bid placed payload (sent to the job owner)
type BidPlacedPayload struct {
	BidID    string        `json:"bid_id"`
	JobID    string        `json:"job_id"`
	JobTitle string        `json:"job_title"`
	Bidder   string        `json:"bidder"`
	Price    float64       `json:"price"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// Bid status changed payload (sent to the bidder)
type BidStatusChangedPayload struct {
	BidID    string        `json:"bid_id"`
	JobID    string        `json:"job_id"`
	JobTitle string        `json:"job_title"`
	Previous string        `json:"previous"`
	Status   string        `json:"status"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}
