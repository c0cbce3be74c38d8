package marketplace

import (
	"strings"
	"time"
)

// Category is one of the fixed job categories.
type Category string

const (
	CategoryWebDevelopment   Category = "Web Development"
	CategoryGraphicsDesign   Category = "Graphics Design"
	CategoryDigitalMarketing Category = "Digital Marketing"
)

// Categories lists every accepted category in display order.
var Categories = []Category{CategoryWebDevelopment, CategoryGraphicsDesign, CategoryDigitalMarketing}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is a bid lifecycle state.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusRejected   Status = "Rejected"
)

var statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusRejected}

// ParseStatus accepts any casing and spacing of a known status ("in progress",
// "In progress", "IN  PROGRESS") and returns its canonical form.
func ParseStatus(s string) (Status, bool) {
	norm := strings.Join(strings.Fields(s), " ")
	for _, st := range statuses {
		if strings.EqualFold(norm, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Buyer identifies the owner of a job.
type Buyer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// Job is a posted task. BidCount is maintained by bid creation only.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"jobTitle"`
	Buyer       Buyer     `json:"buyer"`
	Deadline    time.Time `json:"deadline"`
	Category    Category  `json:"category"`
	MinPrice    float64   `json:"minPrice"`
	MaxPrice    float64   `json:"maxPrice"`
	Description string    `json:"description"`
	BidCount    int       `json:"bidCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// JobFields are the owner-editable fields of a job.
type JobFields struct {
	Title       string
	Deadline    time.Time
	Category    Category
	MinPrice    float64
	MaxPrice    float64
	Description string
}

// Bid is a seller's offer on a job. Buyer holds the job owner's email, copied
// from the job when the bid is placed, so owners can list requests without a join.
type Bid struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	JobTitle  string    `json:"jobTitle"`
	Category  Category  `json:"category"`
	Buyer     string    `json:"buyer"`
	Email     string    `json:"email"`
	Price     float64   `json:"price"`
	Comment   string    `json:"comment"`
	Deadline  time.Time `json:"deadline"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BidTerms are the bidder-editable fields of a bid.
type BidTerms struct {
	Price    float64
	Comment  string
	Deadline time.Time
}

// SortOrder orders job listings by deadline.
type SortOrder string

const (
	SortDefault      SortOrder = ""
	SortDeadlineAsc  SortOrder = "asc"
	SortDeadlineDesc SortOrder = "desc"
)

// ParseSortOrder maps the query value to a SortOrder; "dsc" is the spelling the
// web client sends.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortDeadlineAsc
	case "desc", "dsc":
		return SortDeadlineDesc
	default:
		return SortDefault
	}
}

// JobFilter narrows a job listing. Limit <= 0 means no paging.
type JobFilter struct {
	Category Category
	Search   string
	Sort     SortOrder
	Limit    int
	Offset   int
}
