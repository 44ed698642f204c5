package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/stratdesk/internal/repository"
)

// Service handles AI agent configuration.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new agent service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines agent inputs. Nil Temperature and Active and zero MaxTokens
// and Model take the defaults.
type CreateRequest struct {
	Name         string
	Avatar       string
	Color        string
	Description  string
	SystemPrompt string
	Capabilities []string
	Model        string
	Temperature  *float64
	MaxTokens    int
	Active       *bool
}

// UpdateRequest carries the fields to change; nil fields are left as is.
type UpdateRequest struct {
	Name         *string
	Avatar       *string
	Color        *string
	Description  *string
	SystemPrompt *string
	Capabilities []string
	Model        *string
	Temperature  *float64
	MaxTokens    *int
	Active       *bool
}

func (s *Service) List(ctx context.Context) ([]AIAgent, error) {
	return s.repo.List(ctx)
}

// ListActive returns the agents offered when starting a conversation.
func (s *Service) ListActive(ctx context.Context) ([]AIAgent, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]AIAgent, 0, len(all))
	for _, a := range all {
		if a.Active {
			active = append(active, a)
		}
	}
	return active, nil
}

func (s *Service) Get(ctx context.Context, id string) (*AIAgent, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapErr("getting agent", err)
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*AIAgent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	temperature := DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	if err := validateTuning(temperature, req.MaxTokens); err != nil {
		return nil, err
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = DefaultModel
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	capabilities := req.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}

	now := time.Now().UTC()
	a := &AIAgent{
		ID:           IDPrefix + "_" + uuid.NewString(),
		Name:         name,
		Avatar:       req.Avatar,
		Color:        req.Color,
		Description:  req.Description,
		SystemPrompt: req.SystemPrompt,
		Capabilities: capabilities,
		Model:        model,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*AIAgent, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if req.Temperature != nil {
		if err := validateTuning(*req.Temperature, 0); err != nil {
			return nil, err
		}
	}
	if req.MaxTokens != nil && *req.MaxTokens <= 0 {
		return nil, fmt.Errorf("%w: max_tokens must be positive", ErrInvalidInput)
	}

	a, err := s.repo.Update(ctx, id, func(a *AIAgent) error {
		if req.Name != nil {
			a.Name = strings.TrimSpace(*req.Name)
		}
		if req.Avatar != nil {
			a.Avatar = *req.Avatar
		}
		if req.Color != nil {
			a.Color = *req.Color
		}
		if req.Description != nil {
			a.Description = *req.Description
		}
		if req.SystemPrompt != nil {
			a.SystemPrompt = *req.SystemPrompt
		}
		if req.Capabilities != nil {
			a.Capabilities = req.Capabilities
		}
		if req.Model != nil {
			a.Model = *req.Model
		}
		if req.Temperature != nil {
			a.Temperature = *req.Temperature
		}
		if req.MaxTokens != nil {
			a.MaxTokens = *req.MaxTokens
		}
		if req.Active != nil {
			a.Active = *req.Active
		}
		a.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, mapErr("updating agent", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return mapErr("deleting agent", err)
	}
	return nil
}

// IncrementUsage records one more conversation started with the agent. An unknown
// agent returns ErrAgentNotFound and nothing is written.
func (s *Service) IncrementUsage(ctx context.Context, id string) (*AIAgent, error) {
	a, err := s.repo.Update(ctx, id, func(a *AIAgent) error {
		a.UsageCount++
		a.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, mapErr("incrementing agent usage", err)
	}
	return a, nil
}

func validateTuning(temperature float64, maxTokens int) error {
	if temperature < 0 || temperature > MaxTemperature {
		return fmt.Errorf("%w: temperature must be between 0 and %.1f", ErrInvalidInput, MaxTemperature)
	}
	if maxTokens < 0 {
		return fmt.Errorf("%w: max_tokens cannot be negative", ErrInvalidInput)
	}
	return nil
}

func mapErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAgentNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
