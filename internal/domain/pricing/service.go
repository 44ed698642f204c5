package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/stratdesk/internal/metrics"
	"github.com/rpggio/stratdesk/internal/repository"
)

// Service handles pricing package operations.
type Service struct {
	repo    Repository
	billing BillingReferences
	logger  *slog.Logger
}

// NewService creates a new pricing service.
func NewService(repo Repository, billing BillingReferences, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, billing: billing, logger: logger}
}

// CreateRequest defines package creation inputs.
type CreateRequest struct {
	Name          string
	Description   string
	Price         float64
	Interval      Interval
	StripePriceID string
	Features      []string
	Limits        Limits
	Active        bool
	Popular       bool
}

// UpdateRequest carries the fields to change; nil fields are left as is.
type UpdateRequest struct {
	Name          *string
	Description   *string
	Price         *float64
	Interval      *Interval
	StripePriceID *string
	Features      []string
	Limits        *Limits
	Active        *bool
	Popular       *bool
}

func (s *Service) List(ctx context.Context) ([]Package, error) {
	return s.repo.List(ctx)
}

// ListActive returns the packages currently offered.
func (s *Service) ListActive(ctx context.Context) ([]Package, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]Package, 0, len(all))
	for _, p := range all {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Package, error) {
	pkg, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapErr("getting package", err)
	}
	return pkg, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Package, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	interval := req.Interval
	if interval == "" {
		interval = IntervalMonth
	}
	if !interval.Valid() {
		return nil, fmt.Errorf("%w: unknown interval %q", ErrInvalidInput, interval)
	}
	if !req.Limits.valid() {
		return nil, fmt.Errorf("%w: limits must be -1 (unlimited) or non-negative", ErrInvalidInput)
	}

	features := req.Features
	if features == nil {
		features = []string{}
	}

	now := time.Now().UTC()
	pkg := &Package{
		ID:            IDPrefix + "_" + uuid.NewString(),
		Name:          name,
		Description:   req.Description,
		Price:         req.Price,
		Interval:      interval,
		StripePriceID: req.StripePriceID,
		Features:      features,
		Limits:        req.Limits,
		Active:        req.Active,
		Popular:       req.Popular,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("creating package: %w", err)
	}
	return pkg, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Package, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if req.Interval != nil && !req.Interval.Valid() {
		return nil, fmt.Errorf("%w: unknown interval %q", ErrInvalidInput, *req.Interval)
	}
	if req.Limits != nil && !req.Limits.valid() {
		return nil, fmt.Errorf("%w: limits must be -1 (unlimited) or non-negative", ErrInvalidInput)
	}

	pkg, err := s.repo.Update(ctx, id, func(p *Package) error {
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Interval != nil {
			p.Interval = *req.Interval
		}
		if req.StripePriceID != nil {
			p.StripePriceID = *req.StripePriceID
		}
		if req.Features != nil {
			p.Features = req.Features
		}
		if req.Limits != nil {
			p.Limits = *req.Limits
		}
		if req.Active != nil {
			p.Active = *req.Active
		}
		if req.Popular != nil {
			p.Popular = *req.Popular
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, mapErr("updating package", err)
	}
	return pkg, nil
}

// Delete removes a package unless an active billing record still references it.
// Canceled, past-due, trialing or incomplete subscriptions do not block the delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if s.billing != nil {
		n, err := s.billing.CountActiveByPackage(ctx, id)
		if err != nil {
			return fmt.Errorf("checking package references: %w", err)
		}
		if n > 0 {
			metrics.Global().DomainRejections.WithLabelValues("package_has_active_clients").Inc()
			s.logger.Warn("package delete rejected", "package_id", id, "active_clients", n)
			return ErrPackageHasActiveClients
		}
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return mapErr("deleting package", err)
	}
	s.logger.Info("package deleted", "package_id", id)
	return nil
}

func mapErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPackageNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
