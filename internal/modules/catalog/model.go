package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Item is a piece of furniture in the catalog. Archived items stay
// addressable by id but disappear from default listings.
type Item struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Depth     float64    `json:"depth"`
	Archived  bool       `json:"archived"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	ObjectID  string     `json:"object_id,omitempty"`
	Colors    []*Color   `json:"colors"`
	Styles    []string   `json:"styles"`
	Rooms     []string   `json:"rooms"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Color is a purchasable color variant of an item. ModelID, when set,
// ties the color to one specific model of the same physical design.
type Color struct {
	ID      uuid.UUID `json:"id"`
	ItemID  uuid.UUID `json:"item_id"`
	Color   string    `json:"color"`
	ModelID *string   `json:"model_id,omitempty"`
}
