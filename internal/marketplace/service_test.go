package marketplace_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sudo-init-do/solosphere/internal/apperr"
	"github.com/sudo-init-do/solosphere/internal/data/memstore"
	"github.com/sudo-init-do/solosphere/internal/logger"
	"github.com/sudo-init-do/solosphere/internal/marketplace"
	"github.com/sudo-init-do/solosphere/internal/mocks"
)

const (
	owner  = "owner@x.com"
	bidder = "a@x.com"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, notifier marketplace.Notifier) (*marketplace.Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	svc := marketplace.NewService(store, notifier, logger.Nop(), marketplace.WithClock(func() time.Time { return now }))
	return svc, store
}

func logoJob() marketplace.JobFields {
	return marketplace.JobFields{
		Title:    "Logo Design",
		Deadline: now.Add(7 * 24 * time.Hour),
		Category: marketplace.CategoryGraphicsDesign,
		MinPrice: 50,
		MaxPrice: 200,
	}
}

func createJob(t *testing.T, svc *marketplace.Service) *marketplace.Job {
	t.Helper()
	job, err := svc.CreateJob(context.Background(), owner, marketplace.Buyer{Name: "Owner"}, logoJob())
	require.NoError(t, err)
	return job
}

func bidOn(job *marketplace.Job, price float64) marketplace.BidInput {
	return marketplace.BidInput{JobID: job.ID, Price: price, Comment: "hire me", Deadline: now.Add(72 * time.Hour)}
}

func TestPlaceBid_CountsAndRejectsDuplicate(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	job := createJob(t, svc)
	assert.Equal(t, 0, job.BidCount)
	assert.Equal(t, owner, job.Buyer.Email)

	bid, err := svc.PlaceBid(ctx, bidder, bidOn(job, 100))
	require.NoError(t, err)
	assert.Equal(t, marketplace.StatusPending, bid.Status)
	assert.Equal(t, owner, bid.Buyer)
	assert.Equal(t, "Logo Design", bid.JobTitle)

	got, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BidCount)

	_, err = svc.PlaceBid(ctx, "A@X.com", bidOn(job, 120))
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeDuplicateBid, apperr.GetCode(err))

	got, err = svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BidCount)
}

func TestPlaceBid_ConcurrentBiddersEachCounted(t *testing.T) {
	svc, _ := newService(t, nil)
	job := createJob(t, svc)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for i := 0; i < n; i++ {
		email := fmt.Sprintf("seller%d@x.com", i)
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.PlaceBid(context.Background(), email, bidOn(job, 100))
				errs <- err
			}()
		}
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.Is(err, apperr.ErrCodeDuplicateBid):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, n, ok)
	assert.Equal(t, n, dup)

	got, err := svc.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.BidCount)
}

func TestPlaceBid_Rules(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	job := createJob(t, svc)

	expired, err := svc.CreateJob(ctx, owner, marketplace.Buyer{}, marketplace.JobFields{
		Title:    "Old job",
		Deadline: now.Add(-time.Hour),
		Category: marketplace.CategoryWebDevelopment,
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		caller   string
		in       marketplace.BidInput
		wantCode apperr.ErrorCode
	}{
		{"own job", owner, bidOn(job, 100), apperr.ErrCodeValidation},
		{"deadline passed", bidder, bidOn(expired, 100), apperr.ErrCodeValidation},
		{"below minimum", bidder, bidOn(job, 10), apperr.ErrCodeValidation},
		{"zero price", bidder, bidOn(job, 0), apperr.ErrCodeValidation},
		{"missing job", bidder, marketplace.BidInput{JobID: "00000000-0000-0000-0000-000000000000", Price: 100, Deadline: now}, apperr.ErrCodeNotFound},
		{"malformed job id", bidder, marketplace.BidInput{JobID: "nope", Price: 100, Deadline: now}, apperr.ErrCodeNotFound},
		{"on behalf of another", bidder, marketplace.BidInput{JobID: job.ID, Email: "b@x.com", Price: 100, Deadline: now}, apperr.ErrCodeForbidden},
		{"anonymous", "", bidOn(job, 100), apperr.ErrCodeUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceBid(ctx, tt.caller, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.GetCode(err))
		})
	}

	got, err := svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.BidCount)
}

func TestChangeBidStatus_Scenario(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	job := createJob(t, svc)
	bid, err := svc.PlaceBid(ctx, bidder, bidOn(job, 100))
	require.NoError(t, err)

	updated, err := svc.ChangeBidStatus(ctx, owner, bid.ID, marketplace.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, marketplace.StatusInProgress, updated.Status)

	_, err = svc.ChangeBidStatus(ctx, owner, bid.ID, marketplace.StatusCompleted)
	assert.Equal(t, apperr.ErrCodeInvalidTransition, apperr.GetCode(err))

	updated, err = svc.ChangeBidStatus(ctx, bidder, bid.ID, marketplace.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, marketplace.StatusCompleted, updated.Status)

	for _, to := range []marketplace.Status{marketplace.StatusPending, marketplace.StatusInProgress, marketplace.StatusRejected} {
		_, err = svc.ChangeBidStatus(ctx, owner, bid.ID, to)
		assert.Equal(t, apperr.ErrCodeInvalidTransition, apperr.GetCode(err), "to %s", to)
	}

	_, err = svc.ChangeBidStatus(ctx, "stranger@x.com", bid.ID, marketplace.StatusRejected)
	assert.Equal(t, apperr.ErrCodeForbidden, apperr.GetCode(err))

	_, err = svc.ChangeBidStatus(ctx, owner, "missing", marketplace.StatusRejected)
	assert.True(t, apperr.IsNotFound(err))
}

func TestChangeBidStatus_NoOpIsRefused(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	job := createJob(t, svc)
	bid, err := svc.PlaceBid(ctx, bidder, bidOn(job, 100))
	require.NoError(t, err)

	_, err = svc.ChangeBidStatus(ctx, owner, bid.ID, marketplace.StatusPending)
	assert.Equal(t, apperr.ErrCodeInvalidTransition, apperr.GetCode(err))
}

func TestUpdateBidTerms(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	job := createJob(t, svc)
	bid, err := svc.PlaceBid(ctx, bidder, bidOn(job, 100))
	require.NoError(t, err)

	terms := marketplace.BidTerms{Price: 150, Comment: " faster ", Deadline: now.Add(48 * time.Hour)}
	updated, err := svc.UpdateBidTerms(ctx, bidder, bid.ID, terms)
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Price)
	assert.Equal(t, "faster", updated.Comment)
	assert.Equal(t, marketplace.StatusPending, updated.Status)

	_, err = svc.UpdateBidTerms(ctx, owner, bid.ID, terms)
	assert.Equal(t, apperr.ErrCodeForbidden, apperr.GetCode(err))

	_, err = svc.UpdateBidTerms(ctx, bidder, bid.ID, marketplace.BidTerms{Price: -1, Deadline: now})
	assert.Equal(t, apperr.ErrCodeValidation, apperr.GetCode(err))

	_, err = svc.ChangeBidStatus(ctx, owner, bid.ID, marketplace.StatusRejected)
	require.NoError(t, err)
	_, err = svc.UpdateBidTerms(ctx, bidder, bid.ID, terms)
	assert.Equal(t, apperr.ErrCodeInvalidTransition, apperr.GetCode(err))
}

func TestJobOwnership(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	job := createJob(t, svc)

	fields := logoJob()
	fields.Title = "Logo Design v2"

	_, err := svc.UpdateJob(ctx, bidder, job.ID, fields)
	assert.Equal(t, apperr.ErrCodeForbidden, apperr.GetCode(err))
	err = svc.DeleteJob(ctx, bidder, job.ID)
	assert.Equal(t, apperr.ErrCodeForbidden, apperr.GetCode(err))

	updated, err := svc.UpdateJob(ctx, "Owner@X.com", job.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, "Logo Design v2", updated.Title)

	require.NoError(t, svc.DeleteJob(ctx, owner, job.ID))
	_, err = svc.GetJob(ctx, job.ID)
	assert.True(t, apperr.IsNotFound(err))

	err = svc.DeleteJob(ctx, owner, job.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateJob_Validation(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		mutate    func(f *marketplace.JobFields)
		wantField string
	}{
		{"blank title", func(f *marketplace.JobFields) { f.Title = "  " }, "jobTitle"},
		{"unknown category", func(f *marketplace.JobFields) { f.Category = "Plumbing" }, "category"},
		{"no deadline", func(f *marketplace.JobFields) { f.Deadline = time.Time{} }, "deadline"},
		{"negative min", func(f *marketplace.JobFields) { f.MinPrice = -1 }, "minPrice"},
		{"max below min", func(f *marketplace.JobFields) { f.MaxPrice = 10 }, "maxPrice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logoJob()
			tt.mutate(&f)
			_, err := svc.CreateJob(ctx, owner, marketplace.Buyer{}, f)
			var appErr *apperr.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.ErrCodeValidation, appErr.Code)
			assert.Equal(t, tt.wantField, appErr.Field)
		})
	}

	_, err := svc.CreateJob(ctx, owner, marketplace.Buyer{Email: "else@x.com"}, logoJob())
	assert.Equal(t, apperr.ErrCodeForbidden, apperr.GetCode(err))
}

func TestListJobs_UnknownCategory(t *testing.T) {
	svc, _ := newService(t, nil)
	_, err := svc.ListJobs(context.Background(), marketplace.JobFilter{Category: "Plumbing"})
	assert.Equal(t, apperr.ErrCodeValidation, apperr.GetCode(err))
}

func TestListBids(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	job := createJob(t, svc)
	_, err := svc.PlaceBid(ctx, bidder, bidOn(job, 100))
	require.NoError(t, err)
	_, err = svc.PlaceBid(ctx, "b@x.com", bidOn(job, 90))
	require.NoError(t, err)

	mine, err := svc.ListBids(ctx, "A@x.com", false)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, bidder, mine[0].Email)

	requests, err := svc.ListBids(ctx, owner, true)
	require.NoError(t, err)
	assert.Len(t, requests, 2)

	none, err := svc.ListBids(ctx, owner, false)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestNotifierCalledAndErrorsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	svc, _ := newService(t, notifier)
	ctx := context.Background()
	job := createJob(t, svc)

	notifier.EXPECT().
		BidPlaced(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, j marketplace.Job, b marketplace.Bid) error {
			assert.Equal(t, job.ID, j.ID)
			assert.Equal(t, bidder, b.Email)
			return errors.New("redis down")
		})
	bid, err := svc.PlaceBid(ctx, bidder, bidOn(job, 100))
	require.NoError(t, err)

	notifier.EXPECT().
		BidStatusChanged(gomock.Any(), gomock.Any(), marketplace.StatusPending).
		Return(nil)
	_, err = svc.ChangeBidStatus(ctx, owner, bid.ID, marketplace.StatusRejected)
	require.NoError(t, err)
}

func TestStoreErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	svc := marketplace.NewService(store, nil, logger.Nop())

	boom := errors.New("connection reset")
	store.EXPECT().ListJobs(gomock.Any(), gomock.Any()).Return(nil, boom)
	_, err := svc.ListJobs(context.Background(), marketplace.JobFilter{})
	assert.ErrorIs(t, err, boom)

	id := "6f1c1e9e-8f57-4bb8-9f3a-0d5a4f1f3c11"
	store.EXPECT().GetBid(gomock.Any(), id).Return(&marketplace.Bid{
		ID: id, Buyer: owner, Email: bidder, Status: marketplace.StatusPending,
	}, nil)
	store.EXPECT().
		UpdateBidStatus(gomock.Any(), id, marketplace.StatusPending, marketplace.StatusInProgress).
		Return(nil, apperr.StaleStatus())
	_, err = svc.ChangeBidStatus(context.Background(), owner, id, marketplace.StatusInProgress)
	assert.Equal(t, apperr.ErrCodeStaleStatus, apperr.GetCode(err))
}

func TestListJobs_CapsPageSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	svc := marketplace.NewService(store, nil, logger.Nop())

	store.EXPECT().
		ListJobs(gomock.Any(), marketplace.JobFilter{Search: "logo", Limit: marketplace.MaxPageSize}).
		Return([]marketplace.Job{}, nil)
	_, err := svc.ListJobs(context.Background(), marketplace.JobFilter{Search: "  logo ", Limit: 1000, Offset: -5})
	require.NoError(t, err)
}
