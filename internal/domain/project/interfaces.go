package project

import (
	"context"

	"github.com/rpggio/stratdesk/internal/domain/client"
)

// Repository provides persistence for projects.
type Repository interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	ListByClient(ctx context.Context, clientID string) ([]Project, error)
	Create(ctx context.Context, proj *Project) error
	Update(ctx context.Context, id string, fn func(*Project) error) (*Project, error)
	Delete(ctx context.Context, id string) (*Project, error)
}

// ClientDirectory resolves parent clients and maintains their project counters.
type ClientDirectory interface {
	Get(ctx context.Context, id string) (*client.Client, error)
	AdjustProjects(ctx context.Context, clientID string, delta int) (bool, error)
}

// Dependents counts live conversations that reference a project.
type Dependents interface {
	CountByProject(ctx context.Context, projectID string) (int, error)
}
