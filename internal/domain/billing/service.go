package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/repository"
)

// Service handles client billing records. It records subscription state only; no
// payment is ever processed here.
type Service struct {
	repo     Repository
	packages PackageLookup
	logger   *slog.Logger
}

// NewService creates a new billing service. packages may be nil.
func NewService(repo Repository, packages PackageLookup, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, packages: packages, logger: logger}
}

// CreateRequest defines billing record inputs. PackageName, Amount and the period end
// default from the referenced package when left zero.
type CreateRequest struct {
	ClientID             string
	ClientName           string
	PackageID            string
	PackageName          string
	StripeCustomerID     string
	StripeSubscriptionID string
	Status               Status
	Amount               float64
	CurrentPeriodStart   time.Time
	CurrentPeriodEnd     time.Time
}

// UpdateRequest carries the fields to change; nil fields are left as is.
type UpdateRequest struct {
	ClientName           *string
	PackageID            *string
	PackageName          *string
	StripeCustomerID     *string
	StripeSubscriptionID *string
	Status               *Status
	Amount               *float64
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
}

func (s *Service) List(ctx context.Context) ([]ClientBilling, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByClient(ctx context.Context, clientID string) ([]ClientBilling, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *Service) Get(ctx context.Context, id string) (*ClientBilling, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapErr("getting billing record", err)
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*ClientBilling, error) {
	if strings.TrimSpace(req.ClientID) == "" {
		return nil, fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.PackageID) == "" {
		return nil, fmt.Errorf("%w: package_id is required", ErrInvalidInput)
	}
	status := req.Status
	if status == "" {
		status = StatusActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrInvalidInput)
	}

	now := time.Now().UTC()
	b := &ClientBilling{
		ID:                   IDPrefix + "_" + uuid.NewString(),
		ClientID:             req.ClientID,
		ClientName:           req.ClientName,
		PackageID:            req.PackageID,
		PackageName:          req.PackageName,
		StripeCustomerID:     req.StripeCustomerID,
		StripeSubscriptionID: req.StripeSubscriptionID,
		Status:               status,
		Amount:               req.Amount,
		CurrentPeriodStart:   req.CurrentPeriodStart,
		CurrentPeriodEnd:     req.CurrentPeriodEnd,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if b.CurrentPeriodStart.IsZero() {
		b.CurrentPeriodStart = now
	}

	interval := pricing.IntervalMonth
	if pkg := s.lookupPackage(ctx, req.PackageID); pkg != nil {
		interval = pkg.Interval
		if b.PackageName == "" {
			b.PackageName = pkg.Name
		}
		if b.Amount == 0 {
			b.Amount = pkg.Price
		}
	}
	if b.CurrentPeriodEnd.IsZero() {
		b.CurrentPeriodEnd = PeriodEnd(b.CurrentPeriodStart, interval)
	}
	if b.CurrentPeriodEnd.Before(b.CurrentPeriodStart) {
		return nil, fmt.Errorf("%w: period ends before it starts", ErrInvalidInput)
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating billing record: %w", err)
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*ClientBilling, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}
	if req.Amount != nil && *req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrInvalidInput)
	}
	if req.PackageID != nil && strings.TrimSpace(*req.PackageID) == "" {
		return nil, fmt.Errorf("%w: package_id cannot be empty", ErrInvalidInput)
	}

	packageName := req.PackageName
	if req.PackageID != nil && packageName == nil {
		if pkg := s.lookupPackage(ctx, *req.PackageID); pkg != nil {
			packageName = &pkg.Name
		}
	}

	b, err := s.repo.Update(ctx, id, func(b *ClientBilling) error {
		if req.ClientName != nil {
			b.ClientName = *req.ClientName
		}
		if req.PackageID != nil {
			b.PackageID = *req.PackageID
		}
		if packageName != nil {
			b.PackageName = *packageName
		}
		if req.StripeCustomerID != nil {
			b.StripeCustomerID = *req.StripeCustomerID
		}
		if req.StripeSubscriptionID != nil {
			b.StripeSubscriptionID = *req.StripeSubscriptionID
		}
		if req.Status != nil {
			b.Status = *req.Status
		}
		if req.Amount != nil {
			b.Amount = *req.Amount
		}
		if req.CurrentPeriodStart != nil {
			b.CurrentPeriodStart = *req.CurrentPeriodStart
		}
		if req.CurrentPeriodEnd != nil {
			b.CurrentPeriodEnd = *req.CurrentPeriodEnd
		}
		if b.CurrentPeriodEnd.Before(b.CurrentPeriodStart) {
			return fmt.Errorf("%w: period ends before it starts", ErrInvalidInput)
		}
		b.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, mapErr("updating billing record", err)
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return mapErr("deleting billing record", err)
	}
	return nil
}

func (s *Service) lookupPackage(ctx context.Context, id string) *pricing.Package {
	if s.packages == nil {
		return nil
	}
	pkg, err := s.packages.Get(ctx, id)
	if err != nil {
		s.logger.Debug("billing references unknown package", "package_id", id, "error", err)
		return nil
	}
	return pkg
}

// PeriodEnd returns the end of a billing period of the given interval starting at start.
func PeriodEnd(start time.Time, interval pricing.Interval) time.Time {
	if interval == pricing.IntervalYear {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

func mapErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBillingNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
