package billing

import (
	"context"

	"github.com/rpggio/stratdesk/internal/domain/pricing"
)

// Repository provides persistence for billing records.
type Repository interface {
	List(ctx context.Context) ([]ClientBilling, error)
	Get(ctx context.Context, id string) (*ClientBilling, error)
	ListByClient(ctx context.Context, clientID string) ([]ClientBilling, error)
	Create(ctx context.Context, b *ClientBilling) error
	Update(ctx context.Context, id string, fn func(*ClientBilling) error) (*ClientBilling, error)
	Delete(ctx context.Context, id string) (*ClientBilling, error)
}

// PackageLookup resolves the package a billing record subscribes to.
type PackageLookup interface {
	Get(ctx context.Context, id string) (*pricing.Package, error)
}
