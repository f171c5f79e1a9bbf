package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

// Service defines cart business logic. One cart exists per user, created
// lazily on first add.
type Service interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	AddVariant(ctx context.Context, userID, colorID string) (*Cart, error)
	RemoveVariant(ctx context.Context, userID, colorID string) (*Cart, error)

	// Clear empties the cart. Checkout calls this only after the order
	// write is confirmed, so a failed payment never loses the cart.
	Clear(ctx context.Context, userID string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Get(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return emptyCart(userID), nil
		}
		return nil, err
	}
	if c.Variants == nil {
		c.Variants = []*Variant{}
	}
	return c, nil
}

func (s *service) AddVariant(ctx context.Context, userID, colorID string) (*Cart, error) {
	v, err := s.repo.GetVariant(ctx, colorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("color variant")
		}
		return nil, err
	}
	if v.Archived {
		return nil, apperr.Validation(apperr.Field("color_variant_id", "item is no longer available"))
	}

	c, err := s.repo.Ensure(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure cart: %w", err)
	}
	if err := s.repo.AddVariant(ctx, c.ID.String(), colorID); err != nil {
		return nil, fmt.Errorf("add variant: %w", err)
	}
	return s.Get(ctx, userID)
}

func (s *service) RemoveVariant(ctx context.Context, userID, colorID string) (*Cart, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// nothing to remove
			return emptyCart(userID), nil
		}
		return nil, err
	}
	if err := s.repo.RemoveVariant(ctx, c.ID.String(), colorID); err != nil {
		return nil, fmt.Errorf("remove variant: %w", err)
	}
	return s.Get(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	return s.repo.Clear(ctx, c.ID.String())
}

func emptyCart(userID string) *Cart {
	uid, _ := uuid.Parse(userID)
	return &Cart{UserID: uid, Variants: []*Variant{}}
}
