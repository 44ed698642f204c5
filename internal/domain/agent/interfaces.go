package agent

import "context"

// Repository provides persistence for agents.
type Repository interface {
	List(ctx context.Context) ([]AIAgent, error)
	Get(ctx context.Context, id string) (*AIAgent, error)
	Create(ctx context.Context, a *AIAgent) error
	Update(ctx context.Context, id string, fn func(*AIAgent) error) (*AIAgent, error)
	Delete(ctx context.Context, id string) (*AIAgent, error)
}
