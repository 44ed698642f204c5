package conversation

import (
	"context"

	"github.com/rpggio/stratdesk/internal/domain/project"
)

// Repository provides persistence for conversations.
type Repository interface {
	List(ctx context.Context) ([]Conversation, error)
	Get(ctx context.Context, id string) (*Conversation, error)
	ListByProject(ctx context.Context, projectID string) ([]Conversation, error)
	Create(ctx context.Context, conv *Conversation) error
	Update(ctx context.Context, id string, fn func(*Conversation) error) (*Conversation, error)
	Delete(ctx context.Context, id string) (*Conversation, error)
}

// ProjectDirectory resolves parent projects and maintains their conversation counters.
type ProjectDirectory interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	AdjustConversations(ctx context.Context, projectID string, delta int) (bool, error)
}

// ClientCounter maintains the conversation counter on clients.
type ClientCounter interface {
	AdjustConversations(ctx context.Context, clientID string, delta int) (bool, error)
}
