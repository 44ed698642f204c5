package client

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

// Service handles client operations.
type Service struct {
	repo       Repository
	dependents Dependents
	policy     repository.DeletePolicy
	logger     *slog.Logger
}

// NewService creates a new client service. dependents may be nil, in which case
// deletes never check for live projects.
func NewService(repo Repository, dependents Dependents, policy repository.DeletePolicy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if policy == "" {
		policy = repository.DeleteForbid
	}
	return &Service{repo: repo, dependents: dependents, policy: policy, logger: logger}
}

// CreateRequest defines client creation inputs.
type CreateRequest struct {
	Name        string
	Industry    string
	Avatar      string
	AvatarColor string
}

// UpdateRequest carries the fields to change; nil fields are left as is.
type UpdateRequest struct {
	Name        *string
	Industry    *string
	Avatar      *string
	AvatarColor *string
	LastActive  *string
}

// List returns every client in stored order.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// Get fetches a client by ID.
func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return c, nil
}

// Create stores a new client with zeroed counters.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	avatar := req.Avatar
	if avatar == "" {
		avatar = Initials(name)
	}

	c := &Client{
		ID:          IDPrefix + "_" + uuid.NewString(),
		Name:        name,
		Industry:    req.Industry,
		Avatar:      avatar,
		AvatarColor: req.AvatarColor,
		LastActive:  JustNow,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	s.logger.Debug("client created", "client_id", c.ID)
	return c, nil
}

// Update merges the set fields of req into the client.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}

	c, err := s.repo.Update(ctx, id, func(c *Client) error {
		if req.Name != nil {
			c.Name = strings.TrimSpace(*req.Name)
		}
		if req.Industry != nil {
			c.Industry = *req.Industry
		}
		if req.Avatar != nil {
			c.Avatar = *req.Avatar
		}
		if req.AvatarColor != nil {
			c.AvatarColor = *req.AvatarColor
		}
		if req.LastActive != nil {
			c.LastActive = *req.LastActive
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("updating client: %w", err)
	}
	return c, nil
}

// Delete removes a client. Projects are never cascaded: under DeleteForbid the delete
// is rejected while any project references the client, under DeleteOrphan those
// projects keep a dangling client id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if s.policy == repository.DeleteForbid && s.dependents != nil {
		n, err := s.dependents.CountByClient(ctx, id)
		if err != nil {
			return fmt.Errorf("counting client projects: %w", err)
		}
		if n > 0 {
			metrics.Global().DomainRejections.WithLabelValues("client_has_projects").Inc()
			return fmt.Errorf("%w: %d live projects", ErrClientHasProjects, n)
		}
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("deleting client: %w", err)
	}
	s.logger.Info("client deleted", "client_id", id, "policy", string(s.policy))
	return nil
}
