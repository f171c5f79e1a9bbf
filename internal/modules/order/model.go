package order

import (
	"time"

	"github.com/google/uuid"
)

// Order is one row of the append-only purchase ledger. Everything a later
// reader needs is snapshotted onto the row at creation time; no field is
// ever updated, and catalog edits or deletions cannot reach it.
type Order struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"` // nil for guests and deleted accounts
	CustomerName string     `json:"customer_name"`
	Email        string     `json:"email,omitempty"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	ZipCode      string     `json:"zip_code"`
	Country      string     `json:"country"`
	Total        float64    `json:"total"`
	Furniture    []LineItem `json:"furniture"`
	CreatedAt    time.Time  `json:"created_at"`
}

// LineItem is a frozen copy of one purchased variant. ItemID is kept for
// reference only; the snapshot fields are authoritative.
type LineItem struct {
	ItemID  string  `json:"item_id,omitempty"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Color   string  `json:"color"`
	ModelID string  `json:"model_id,omitempty"`
}

// CustomerInfo is the shipping identity captured into the order.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}
