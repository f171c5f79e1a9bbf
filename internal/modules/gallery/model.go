package gallery

import (
	"time"

	"github.com/google/uuid"
)

// Post is a customer photo of furniture in their home. ImageName is the
// filestore key; clients fetch the bytes from the files endpoint.
type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Caption   string    `json:"caption"`
	ImageName string    `json:"image_name"`
	CreatedAt time.Time `json:"created_at"`
}
