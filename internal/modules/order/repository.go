package order

import "context"

// Repository defines the interface for order storage. There is deliberately
// no update or delete: the ledger is append-only.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
}
