package catalog

import "context"

// Repository defines the interface for catalog data storage.
type Repository interface {
	// Create persists the item and all its tag rows atomically.
	Create(ctx context.Context, item *Item) error

	// GetByID returns the item with its tags, archived or not.
	GetByID(ctx context.Context, id string) (*Item, error)

	// List returns items matching the filter, tags loaded.
	List(ctx context.Context, f Filter) ([]*Item, error)

	// Update rewrites the item row and replaces its tag rows atomically.
	Update(ctx context.Context, item *Item) error

	// Archive soft-deletes the item. sql.ErrNoRows when the id is unknown.
	Archive(ctx context.Context, id string) error
}
