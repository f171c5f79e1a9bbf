package social

import (
	"time"

	"github.com/google/uuid"
)

// Block records that one user no longer wants to see another's gallery
// activity. At most one row exists per blocker/blocked pair.
type Block struct {
	ID        uuid.UUID `json:"id"`
	BlockerID uuid.UUID `json:"blocker_id"`
	BlockedID uuid.UUID `json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Like marks a user's appreciation of a gallery post, at most once per pair.
type Like struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PostID    uuid.UUID `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
