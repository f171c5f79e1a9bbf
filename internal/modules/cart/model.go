package cart

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a user's basket: a set of catalog color variants, one of each.
// Prices are never stored here; checkout derives them from the live catalog.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Variants  []*Variant `json:"variants"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Variant is a cart entry joined with its current catalog state.
type Variant struct {
	ColorID  uuid.UUID `json:"color_id"`
	ItemID   uuid.UUID `json:"item_id"`
	ItemName string    `json:"item_name"`
	Color    string    `json:"color"`
	ModelID  *string   `json:"model_id,omitempty"`
	Price    float64   `json:"price"`
	Archived bool      `json:"archived"`
	AddedAt  time.Time `json:"added_at"`
}
