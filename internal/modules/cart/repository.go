package cart

import "context"

// Repository defines the interface for cart data storage.
type Repository interface {
	// GetByUser loads the cart with its variants. sql.ErrNoRows when the
	// user has never added anything.
	GetByUser(ctx context.Context, userID string) (*Cart, error)

	// Ensure returns the user's cart, creating the row if missing.
	Ensure(ctx context.Context, userID string) (*Cart, error)

	// AddVariant adds a color variant to the cart set. Adding a variant
	// already present is a no-op.
	AddVariant(ctx context.Context, cartID, colorID string) error

	// RemoveVariant removes a variant; absent variants are a no-op.
	RemoveVariant(ctx context.Context, cartID, colorID string) error

	// Clear empties the variant set, keeping the cart row.
	Clear(ctx context.Context, cartID string) error

	// GetVariant resolves a catalog color with its item's current name,
	// price, and archived flag. sql.ErrNoRows for unknown ids.
	GetVariant(ctx context.Context, colorID string) (*Variant, error)
}
