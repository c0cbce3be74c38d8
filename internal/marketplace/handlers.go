package marketplace

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/solosphere/internal/apperr"
	"github.com/sudo-init-do/solosphere/internal/httpx"
	"github.com/sudo-init-do/solosphere/internal/logger"
	"github.com/sudo-init-do/solosphere/internal/middleware"
)

// DefaultPageSize applies when a listing asks for a page without a size.
const DefaultPageSize = 10

type JobRequest struct {
	JobTitle    string    `json:"jobTitle" validate:"required"`
	Buyer       Buyer     `json:"buyer"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	MinPrice    float64   `json:"minPrice" validate:"gte=0"`
	MaxPrice    float64   `json:"maxPrice" validate:"gte=0"`
	Description string    `json:"description"`
}

func (r JobRequest) fields() JobFields {
	return JobFields{
		Title:       r.JobTitle,
		Deadline:    r.Deadline,
		Category:    Category(r.Category),
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		Description: r.Description,
	}
}

type BidRequest struct {
	JobID    string    `json:"jobId" validate:"required"`
	Email    string    `json:"email" validate:"omitempty,email"`
	Price    float64   `json:"price" validate:"gt=0"`
	Comment  string    `json:"comment"`
	Deadline time.Time `json:"deadline" validate:"required"`
}

type BidTermsRequest struct {
	Price    float64   `json:"price" validate:"gt=0"`
	Comment  string    `json:"comment"`
	Deadline time.Time `json:"deadline" validate:"required"`
}

type StatusRequest struct {
	NewStatus string `json:"newStatus" validate:"required"`
}

// Handler exposes the Service over HTTP.
type Handler struct {
	svc *Service
	log *logger.Logger
}

func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the job and bid routes. requireAuth is applied per route so
// unknown paths still fall through to echo's 404.
func (h *Handler) Register(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	ownPath := middleware.RequireEmailParam("email", h.log)

	e.GET("/jobs", h.ListJobs)
	e.GET("/jobs-count", h.CountJobs)
	e.GET("/job/:id", h.GetJob)
	e.GET("/jobs/:email", h.ListOwnerJobs, requireAuth, ownPath)
	e.POST("/add-job", h.CreateJob, requireAuth)
	e.PUT("/job/:id", h.UpdateJob, requireAuth)
	e.DELETE("/job/:id", h.DeleteJob, requireAuth)

	e.POST("/add-bid", h.PlaceBid, requireAuth)
	e.GET("/my-bids/:email", h.ListBids, requireAuth, ownPath)
	e.GET("/bid/:email", h.ListBidderBids, requireAuth, ownPath)
	e.PUT("/bid/:id", h.UpdateBidTerms, requireAuth)
	e.PATCH("/update-bid-request/:id", h.ChangeBidStatus, requireAuth)
}

// =========================
// Jobs
// =========================

// filterFromQuery reads filter, search, sort, page and size. Out of range paging
// values are ignored.
func filterFromQuery(c echo.Context) JobFilter {
	f := JobFilter{
		Category: Category(c.QueryParam("filter")),
		Search:   c.QueryParam("search"),
		Sort:     ParseSortOrder(c.QueryParam("sort")),
	}
	size := 0
	if s := c.QueryParam("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			size = v
		}
	}
	page := 0
	if p := c.QueryParam("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if page > 0 && size == 0 {
		size = DefaultPageSize
	}
	if size > 0 {
		if size > MaxPageSize {
			size = MaxPageSize
		}
		if page == 0 {
			page = 1
		}
		f.Limit = size
		f.Offset = (page - 1) * size
	}
	return f
}

func (h *Handler) ListJobs(c echo.Context) error {
	jobs, err := h.svc.ListJobs(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

func (h *Handler) CountJobs(c echo.Context) error {
	f := filterFromQuery(c)
	f.Limit, f.Offset = 0, 0
	n, err := h.svc.CountJobs(c.Request().Context(), f)
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

func (h *Handler) GetJob(c echo.Context) error {
	job, err := h.svc.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *Handler) ListOwnerJobs(c echo.Context) error {
	jobs, err := h.svc.ListJobsByOwner(c.Request().Context(), c.Param("email"))
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

func (h *Handler) CreateJob(c echo.Context) error {
	req := new(JobRequest)
	if err := httpx.Bind(c, req); err != nil {
		return httpx.Error(c, h.log, err)
	}
	job, err := h.svc.CreateJob(c.Request().Context(), middleware.CallerEmail(c), req.Buyer, req.fields())
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, job)
}

func (h *Handler) UpdateJob(c echo.Context) error {
	req := new(JobRequest)
	if err := httpx.Bind(c, req); err != nil {
		return httpx.Error(c, h.log, err)
	}
	job, err := h.svc.UpdateJob(c.Request().Context(), middleware.CallerEmail(c), c.Param("id"), req.fields())
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *Handler) DeleteJob(c echo.Context) error {
	id := c.Param("id")
	if err := h.svc.DeleteJob(c.Request().Context(), middleware.CallerEmail(c), id); err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "job deleted", "id": id})
}

// =========================
// Bids
// =========================

func (h *Handler) PlaceBid(c echo.Context) error {
	req := new(BidRequest)
	if err := httpx.Bind(c, req); err != nil {
		return httpx.Error(c, h.log, err)
	}
	bid, err := h.svc.PlaceBid(c.Request().Context(), middleware.CallerEmail(c), BidInput{
		JobID:    req.JobID,
		Email:    req.Email,
		Price:    req.Price,
		Comment:  req.Comment,
		Deadline: req.Deadline,
	})
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, bid)
}

// ListBids answers the caller's own bids, or with ?buyer=true the bid requests
// on jobs the caller owns.
func (h *Handler) ListBids(c echo.Context) error {
	asBuyer, _ := strconv.ParseBool(c.QueryParam("buyer"))
	bids, err := h.svc.ListBids(c.Request().Context(), c.Param("email"), asBuyer)
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, bids)
}

func (h *Handler) ListBidderBids(c echo.Context) error {
	bids, err := h.svc.ListBids(c.Request().Context(), c.Param("email"), false)
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, bids)
}

func (h *Handler) UpdateBidTerms(c echo.Context) error {
	req := new(BidTermsRequest)
	if err := httpx.Bind(c, req); err != nil {
		return httpx.Error(c, h.log, err)
	}
	bid, err := h.svc.UpdateBidTerms(c.Request().Context(), middleware.CallerEmail(c), c.Param("id"), BidTerms{
		Price:    req.Price,
		Comment:  req.Comment,
		Deadline: req.Deadline,
	})
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, bid)
}

func (h *Handler) ChangeBidStatus(c echo.Context) error {
	req := new(StatusRequest)
	if err := httpx.Bind(c, req); err != nil {
		return httpx.Error(c, h.log, err)
	}
	to, ok := ParseStatus(req.NewStatus)
	if !ok {
		return httpx.Error(c, h.log, apperr.ValidationField("newStatus", "unknown status"))
	}
	bid, err := h.svc.ChangeBidStatus(c.Request().Context(), middleware.CallerEmail(c), c.Param("id"), to)
	if err != nil {
		return httpx.Error(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"modified": true, "bid": bid})
}
