package social

import "context"

type Repository interface {
	CreateBlock(ctx context.Context, b *Block) error
	// DeleteBlock reports no error when the pair was not blocked.
	DeleteBlock(ctx context.Context, blockerID, blockedID string) error
	ListBlocks(ctx context.Context, blockerID string) ([]*Block, error)
	IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error)

	CreateLike(ctx context.Context, l *Like) error
	// DeleteLike reports no error when no like existed.
	DeleteLike(ctx context.Context, userID, postID string) error
	ListLikesForPost(ctx context.Context, postID string) ([]*Like, error)
}
