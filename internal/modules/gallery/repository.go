package gallery

import "context"

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	// Feed lists recent posts, skipping authors the viewer has blocked.
	// An empty viewerID returns everything.
	Feed(ctx context.Context, viewerID string) ([]*Post, error)
	ListByUser(ctx context.Context, userID string) ([]*Post, error)
	Delete(ctx context.Context, id string) error
}
