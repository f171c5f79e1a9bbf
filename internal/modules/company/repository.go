package company

import "context"

// Repository defines the interface for company data storage.
type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
}
