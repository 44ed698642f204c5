package conversation

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

// Service handles conversation and message operations.
type Service struct {
	repo     Repository
	projects ProjectDirectory
	clients  ClientCounter
	logger   *slog.Logger
}

// NewService creates a new conversation service. projects and clients may be nil.
func NewService(repo Repository, projects ProjectDirectory, clients ClientCounter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, projects: projects, clients: clients, logger: logger}
}

// CreateRequest defines conversation creation inputs. Empty project and client display
// fields are filled from the parent project.
type CreateRequest struct {
	ProjectID   string
	ProjectName string
	ClientID    string
	ClientName  string
	AgentID     string
	AgentName   string
	AgentAvatar string
	AgentColor  string
	Title       string
}

// UpdateRequest carries the fields to change; nil fields are left as is.
type UpdateRequest struct {
	Title       *string
	ProjectName *string
	ClientName  *string
	AgentID     *string
	AgentName   *string
	AgentAvatar *string
	AgentColor  *string
}

// NewMessage is a message before the store assigns its id and timestamp.
type NewMessage struct {
	Role    Role
	Content string
}

// List returns every conversation in stored order.
func (s *Service) List(ctx context.Context) ([]Conversation, error) {
	return s.repo.List(ctx)
}

// ListByProject returns the conversations referencing projectID.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Conversation, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// Get fetches a conversation by ID.
func (s *Service) Get(ctx context.Context, id string) (*Conversation, error) {
	conv, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("getting conversation: %w", err)
	}
	return conv, nil
}

// Create stores a conversation, bumps the parent project's conversation counter and
// marks the project active.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Conversation, error) {
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultTitle
	}

	if s.projects != nil && (req.ProjectName == "" || req.ClientID == "" || req.ClientName == "") {
		if proj, err := s.projects.Get(ctx, req.ProjectID); err == nil {
			if req.ProjectName == "" {
				req.ProjectName = proj.Name
			}
			if req.ClientID == "" {
				req.ClientID = proj.ClientID
			}
			if req.ClientName == "" {
				req.ClientName = proj.ClientName
			}
		}
	}

	now := time.Now().UTC()
	conv := &Conversation{
		ID:          IDPrefix + "_" + uuid.NewString(),
		ProjectID:   req.ProjectID,
		ProjectName: req.ProjectName,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		AgentID:     req.AgentID,
		AgentName:   req.AgentName,
		AgentAvatar: req.AgentAvatar,
		AgentColor:  req.AgentColor,
		Title:       title,
		Timestamp:   JustNow,
		Messages:    []Message{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}
	s.adjustParents(ctx, conv, 1)
	return conv, nil
}

// Update merges the set fields of req into the conversation and refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Conversation, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}

	conv, err := s.repo.Update(ctx, id, func(c *Conversation) error {
		if req.Title != nil {
			c.Title = strings.TrimSpace(*req.Title)
		}
		if req.ProjectName != nil {
			c.ProjectName = *req.ProjectName
		}
		if req.ClientName != nil {
			c.ClientName = *req.ClientName
		}
		if req.AgentID != nil {
			c.AgentID = *req.AgentID
		}
		if req.AgentName != nil {
			c.AgentName = *req.AgentName
		}
		if req.AgentAvatar != nil {
			c.AgentAvatar = *req.AgentAvatar
		}
		if req.AgentColor != nil {
			c.AgentColor = *req.AgentColor
		}
		c.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, s.mapErr("updating conversation", err)
	}
	return conv, nil
}

// AddMessage appends one message. Only user messages replace the preview.
func (s *Service) AddMessage(ctx context.Context, id string, msg NewMessage) (*Message, error) {
	added, err := s.append(ctx, id, msg)
	if err != nil {
		return nil, err
	}
	return &added[0], nil
}

// AddExchange appends a user message and the assistant's reply in one atomic write, so
// no other message can land between them.
func (s *Service) AddExchange(ctx context.Context, id, userContent, assistantContent string) ([]Message, error) {
	return s.append(ctx, id,
		NewMessage{Role: RoleUser, Content: userContent},
		NewMessage{Role: RoleAssistant, Content: assistantContent},
	)
}

func (s *Service) append(ctx context.Context, id string, msgs ...NewMessage) ([]Message, error) {
	now := time.Now().UTC()
	added := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if !m.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, m.Role)
		}
		added = append(added, Message{
			ID:        MessageIDPrefix + "_" + uuid.NewString(),
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: now,
		})
	}

	_, err := s.repo.Update(ctx, id, func(c *Conversation) error {
		for _, m := range added {
			c.Messages = append(c.Messages, m)
			if m.Role == RoleUser {
				c.Preview = Preview(m.Content)
			}
		}
		c.Timestamp = JustNow
		c.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, s.mapErr("adding message", err)
	}
	return added, nil
}

// History returns the conversation's messages as role/content turns, oldest first.
func (s *Service) History(ctx context.Context, id string) ([]Turn, error) {
	conv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	turns := make([]Turn, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		turns = append(turns, Turn{Role: m.Role, Content: m.Content})
	}
	return turns, nil
}

// Delete removes a conversation and decrements its parent counters.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.mapErr("deleting conversation", err)
	}
	s.adjustParents(ctx, removed, -1)
	return nil
}

// adjustParents is best effort: the conversation write already happened.
func (s *Service) adjustParents(ctx context.Context, conv *Conversation, delta int) {
	if s.projects != nil && conv.ProjectID != "" {
		found, err := s.projects.AdjustConversations(ctx, conv.ProjectID, delta)
		if err != nil {
			s.logger.Error("failed to adjust project conversation count", "project_id", conv.ProjectID, "delta", delta, "error", err)
		} else if !found {
			s.logger.Debug("conversation references missing project", "project_id", conv.ProjectID)
		}
	}
	if s.clients != nil && conv.ClientID != "" {
		if _, err := s.clients.AdjustConversations(ctx, conv.ClientID, delta); err != nil {
			s.logger.Error("failed to adjust client conversation count", "client_id", conv.ClientID, "delta", delta, "error", err)
		}
	}
}

func (s *Service) mapErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrConversationNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
