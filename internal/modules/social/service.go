package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

// Service manages the block list and post likes. Both relations are strict
// sets: creating a duplicate is a conflict, removing an absent row is a no-op.
type Service interface {
	Block(ctx context.Context, blockerID, blockedID string) (*Block, error)
	Unblock(ctx context.Context, blockerID, blockedID string) error
	ListBlocks(ctx context.Context, blockerID string) ([]*Block, error)

	// IsBlocked reports whether blocker has blocked blocked. Directional:
	// IsBlocked(a, b) says nothing about IsBlocked(b, a).
	IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error)

	Like(ctx context.Context, userID, postID string) (*Like, error)
	Unlike(ctx context.Context, userID, postID string) error
	ListLikesForPost(ctx context.Context, postID string) ([]*Like, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Block(ctx context.Context, blockerID, blockedID string) (*Block, error) {
	if blockerID == blockedID {
		return nil, apperr.Validation(apperr.Field("user_id", "cannot block yourself"))
	}
	blocker, err := uuid.Parse(blockerID)
	if err != nil {
		return nil, apperr.Validation(apperr.Field("user_id", "malformed user id"))
	}
	blocked, err := uuid.Parse(blockedID)
	if err != nil {
		return nil, apperr.Validation(apperr.Field("user_id", "malformed user id"))
	}

	b := &Block{ID: uuid.New(), BlockerID: blocker, BlockedID: blocked}
	if err := s.repo.CreateBlock(ctx, b); err != nil {
		if isUnique(err) {
			return nil, apperr.Conflict("user is already blocked")
		}
		if isFKViolation(err) {
			return nil, apperr.NotFound("user")
		}
		return nil, fmt.Errorf("create block: %w", err)
	}
	return b, nil
}

func (s *service) Unblock(ctx context.Context, blockerID, blockedID string) error {
	return s.repo.DeleteBlock(ctx, blockerID, blockedID)
}

func (s *service) ListBlocks(ctx context.Context, blockerID string) ([]*Block, error) {
	blocks, err := s.repo.ListBlocks(ctx, blockerID)
	if err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []*Block{}
	}
	return blocks, nil
}

func (s *service) IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error) {
	return s.repo.IsBlocked(ctx, blockerID, blockedID)
}

func (s *service) Like(ctx context.Context, userID, postID string) (*Like, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.Validation(apperr.Field("user_id", "malformed user id"))
	}
	pid, err := uuid.Parse(postID)
	if err != nil {
		return nil, apperr.Validation(apperr.Field("post_id", "malformed post id"))
	}

	l := &Like{ID: uuid.New(), UserID: uid, PostID: pid}
	if err := s.repo.CreateLike(ctx, l); err != nil {
		if isUnique(err) {
			return nil, apperr.Conflict("post is already liked")
		}
		if isFKViolation(err) {
			return nil, apperr.NotFound("post")
		}
		return nil, fmt.Errorf("create like: %w", err)
	}
	return l, nil
}

func (s *service) Unlike(ctx context.Context, userID, postID string) error {
	return s.repo.DeleteLike(ctx, userID, postID)
}

func (s *service) ListLikesForPost(ctx context.Context, postID string) ([]*Like, error) {
	likes, err := s.repo.ListLikesForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []*Like{}
	}
	return likes, nil
}
