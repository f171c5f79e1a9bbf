package company

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a furniture manufacturer whose pieces appear in the
// catalog.
type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
