package project

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

// Service handles project operations.
type Service struct {
	repo       Repository
	clients    ClientDirectory
	dependents Dependents
	policy     repository.DeletePolicy
	logger     *slog.Logger
}

// NewService creates a new project service. clients and dependents may be nil.
func NewService(repo Repository, clients ClientDirectory, dependents Dependents, policy repository.DeletePolicy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if policy == "" {
		policy = repository.DeleteForbid
	}
	return &Service{
		repo:       repo,
		clients:    clients,
		dependents: dependents,
		policy:     policy,
		logger:     logger,
	}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ClientID   string
	ClientName string
	Name       string
	Type       string
	Status     Status
	Progress   int
	Members    int
	StartDate  string
	DueDate    string
}

// UpdateRequest carries the fields to change; nil fields are left as is.
// ClientID is fixed at creation so client counters stay consistent.
type UpdateRequest struct {
	ClientName *string
	Name       *string
	Type       *string
	Status     *Status
	Progress   *int
	Members    *int
	StartDate  *string
	DueDate    *string
	LastActive *string
}

// List returns every project in stored order.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// ListByClient returns the projects referencing clientID.
func (s *Service) ListByClient(ctx context.Context, clientID string) ([]Project, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Create stores a project and bumps its client's project counter. A missing client is
// not an error; the project keeps the dangling reference.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ClientID) == "" {
		return nil, fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	}
	status := req.Status
	if status == "" {
		status = StatusPlanning
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if req.Members < 0 {
		return nil, fmt.Errorf("%w: members cannot be negative", ErrInvalidInput)
	}

	clientName := req.ClientName
	if clientName == "" && s.clients != nil {
		if c, err := s.clients.Get(ctx, req.ClientID); err == nil {
			clientName = c.Name
		}
	}

	proj := &Project{
		ID:         IDPrefix + "_" + uuid.NewString(),
		ClientID:   req.ClientID,
		ClientName: clientName,
		Name:       name,
		Type:       req.Type,
		Status:     status,
		Progress:   ClampProgress(req.Progress),
		Members:    req.Members,
		StartDate:  req.StartDate,
		DueDate:    req.DueDate,
		LastActive: JustNow,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	s.adjustClient(ctx, proj.ClientID, 1)
	return proj, nil
}

// Update merges the set fields of req into the project.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Project, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}
	if req.Members != nil && *req.Members < 0 {
		return nil, fmt.Errorf("%w: members cannot be negative", ErrInvalidInput)
	}

	proj, err := s.repo.Update(ctx, id, func(p *Project) error {
		if req.ClientName != nil {
			p.ClientName = *req.ClientName
		}
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.Type != nil {
			p.Type = *req.Type
		}
		if req.Status != nil {
			p.Status = *req.Status
		}
		if req.Progress != nil {
			p.Progress = ClampProgress(*req.Progress)
		}
		if req.Members != nil {
			p.Members = *req.Members
		}
		if req.StartDate != nil {
			p.StartDate = *req.StartDate
		}
		if req.DueDate != nil {
			p.DueDate = *req.DueDate
		}
		if req.LastActive != nil {
			p.LastActive = *req.LastActive
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return proj, nil
}

// Delete removes a project and decrements its client's project counter.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if s.policy == repository.DeleteForbid && s.dependents != nil {
		n, err := s.dependents.CountByProject(ctx, id)
		if err != nil {
			return fmt.Errorf("counting project conversations: %w", err)
		}
		if n > 0 {
			metrics.Global().DomainRejections.WithLabelValues("project_has_conversations").Inc()
			return fmt.Errorf("%w: %d live conversations", ErrProjectHasConversations, n)
		}
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	s.adjustClient(ctx, removed.ClientID, -1)
	return nil
}

// adjustClient is best effort: the project write already happened, so a failed counter
// update is logged rather than reported as a failed create or delete.
func (s *Service) adjustClient(ctx context.Context, clientID string, delta int) {
	if s.clients == nil || clientID == "" {
		return
	}
	found, err := s.clients.AdjustProjects(ctx, clientID, delta)
	if err != nil {
		s.logger.Error("failed to adjust client project count", "client_id", clientID, "delta", delta, "error", err)
		return
	}
	if !found {
		s.logger.Debug("project references missing client", "client_id", clientID)
	}
}
