package client

import "context"

// Repository provides persistence for clients.
type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, id string, fn func(*Client) error) (*Client, error)
	Delete(ctx context.Context, id string) (*Client, error)
}

// Dependents counts live projects that reference a client.
type Dependents interface {
	CountByClient(ctx context.Context, clientID string) (int, error)
}
