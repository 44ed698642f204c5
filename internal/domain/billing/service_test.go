package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/repository"
	"github.com/rpggio/stratdesk/internal/repository/mocks"
)

func TestBillingService_CreateDefaultsFromPackage(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.BillingRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	packages := &mocks.PackageRepository{}
	packages.On("Get", ctx, "pkg_1").
		Return(&pricing.Package{ID: "pkg_1", Name: "Professional", Price: 299, Interval: pricing.IntervalYear}, nil)

	svc := billing.NewService(repo, packages, nil)
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	b, err := svc.Create(ctx, billing.CreateRequest{ClientID: "client_1", PackageID: "pkg_1", CurrentPeriodStart: start})
	require.NoError(t, err)
	require.Equal(t, billing.StatusActive, b.Status)
	require.Equal(t, "Professional", b.PackageName)
	require.Equal(t, 299.0, b.Amount)
	require.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), b.CurrentPeriodEnd)
}

func TestBillingService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := billing.NewService(&mocks.BillingRepository{}, nil, nil)

	_, err := svc.Create(ctx, billing.CreateRequest{PackageID: "pkg_1"})
	require.ErrorIs(t, err, billing.ErrInvalidInput)
	_, err = svc.Create(ctx, billing.CreateRequest{ClientID: "client_1"})
	require.ErrorIs(t, err, billing.ErrInvalidInput)
	_, err = svc.Create(ctx, billing.CreateRequest{ClientID: "client_1", PackageID: "pkg_1", Status: "paid"})
	require.ErrorIs(t, err, billing.ErrInvalidInput)
}

func TestBillingService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &mocks.BillingRepository{}
	repo.On("Update", ctx, "billing_1", mock.Anything).Return(&billing.ClientBilling{
		ID: "billing_1", Status: billing.StatusActive,
		CurrentPeriodStart: start, CurrentPeriodEnd: start.AddDate(0, 1, 0),
	}, nil)

	svc := billing.NewService(repo, nil, nil)
	canceled := billing.StatusCanceled
	b, err := svc.Update(ctx, "billing_1", billing.UpdateRequest{Status: &canceled})
	require.NoError(t, err)
	require.Equal(t, billing.StatusCanceled, b.Status)

	early := start.AddDate(0, 0, -1)
	_, err = svc.Update(ctx, "billing_1", billing.UpdateRequest{CurrentPeriodEnd: &early})
	require.ErrorIs(t, err, billing.ErrInvalidInput)
}

func TestBillingService_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.BillingRepository{}
	repo.On("Get", ctx, "billing_x").Return(nil, repository.ErrNotFound)
	repo.On("Delete", ctx, "billing_x").Return(nil, repository.ErrNotFound)

	svc := billing.NewService(repo, nil, nil)
	_, err := svc.Get(ctx, "billing_x")
	require.ErrorIs(t, err, billing.ErrBillingNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "billing_x"), billing.ErrBillingNotFound)
}

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	require.Equal(t, start.AddDate(0, 1, 0), billing.PeriodEnd(start, pricing.IntervalMonth))
	require.Equal(t, start.AddDate(1, 0, 0), billing.PeriodEnd(start, pricing.IntervalYear))
}
