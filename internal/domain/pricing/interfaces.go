package pricing

import "context"

// Repository provides persistence for pricing packages.
type Repository interface {
	List(ctx context.Context) ([]Package, error)
	Get(ctx context.Context, id string) (*Package, error)
	Create(ctx context.Context, pkg *Package) error
	Update(ctx context.Context, id string, fn func(*Package) error) (*Package, error)
	Delete(ctx context.Context, id string) (*Package, error)
}

// BillingReferences counts active billing records that reference a package.
type BillingReferences interface {
	CountActiveByPackage(ctx context.Context, packageID string) (int, error)
}
