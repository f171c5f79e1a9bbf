package cart

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

// memRepo mirrors the schema: one cart row per user, variants as a set.
type memRepo struct {
	catalog map[string]*Variant // colorID -> current catalog state
	carts   map[string]*Cart    // userID -> cart
}

func newMemRepo() *memRepo {
	return &memRepo{catalog: map[string]*Variant{}, carts: map[string]*Cart{}}
}

func (m *memRepo) addCatalogVariant(name string, price float64, archived bool) string {
	v := &Variant{
		ColorID:  uuid.New(),
		ItemID:   uuid.New(),
		ItemName: name,
		Color:    "oak",
		Price:    price,
		Archived: archived,
	}
	m.catalog[v.ColorID.String()] = v
	return v.ColorID.String()
}

func (m *memRepo) GetByUser(_ context.Context, userID string) (*Cart, error) {
	c, ok := m.carts[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *memRepo) Ensure(_ context.Context, userID string) (*Cart, error) {
	if c, ok := m.carts[userID]; ok {
		return c, nil
	}
	uid, _ := uuid.Parse(userID)
	c := &Cart{ID: uuid.New(), UserID: uid, CreatedAt: time.Now()}
	m.carts[userID] = c
	return c, nil
}

func (m *memRepo) findCart(cartID string) *Cart {
	for _, c := range m.carts {
		if c.ID.String() == cartID {
			return c
		}
	}
	return nil
}

func (m *memRepo) AddVariant(_ context.Context, cartID, colorID string) error {
	c := m.findCart(cartID)
	for _, v := range c.Variants {
		if v.ColorID.String() == colorID {
			return nil
		}
	}
	v := *m.catalog[colorID]
	v.AddedAt = time.Now()
	c.Variants = append(c.Variants, &v)
	return nil
}

func (m *memRepo) RemoveVariant(_ context.Context, cartID, colorID string) error {
	c := m.findCart(cartID)
	kept := c.Variants[:0]
	for _, v := range c.Variants {
		if v.ColorID.String() != colorID {
			kept = append(kept, v)
		}
	}
	c.Variants = kept
	return nil
}

func (m *memRepo) Clear(_ context.Context, cartID string) error {
	m.findCart(cartID).Variants = nil
	return nil
}

func (m *memRepo) GetVariant(_ context.Context, colorID string) (*Variant, error) {
	v, ok := m.catalog[colorID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return v, nil
}

func TestCartService(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("get without a cart returns an empty one", func(t *testing.T) {
		svc := NewService(newMemRepo())
		c, err := svc.Get(ctx, userID)
		require.NoError(t, err)
		assert.NotNil(t, c.Variants)
		assert.Empty(t, c.Variants)
	})

	t.Run("adding the same variant twice keeps one", func(t *testing.T) {
		repo := newMemRepo()
		colorID := repo.addCatalogVariant("Fjord Sofa", 899.00, false)
		svc := NewService(repo)

		_, err := svc.AddVariant(ctx, userID, colorID)
		require.NoError(t, err)
		c, err := svc.AddVariant(ctx, userID, colorID)
		require.NoError(t, err)
		assert.Len(t, c.Variants, 1)
	})

	t.Run("unknown variant is not found", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.AddVariant(ctx, userID, uuid.New().String())
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("archived variant cannot be added", func(t *testing.T) {
		repo := newMemRepo()
		colorID := repo.addCatalogVariant("Retired Lamp", 59.00, true)
		svc := NewService(repo)

		_, err := svc.AddVariant(ctx, userID, colorID)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("removing an absent variant is a no-op", func(t *testing.T) {
		repo := newMemRepo()
		colorID := repo.addCatalogVariant("Fjord Sofa", 899.00, false)
		svc := NewService(repo)

		// no cart at all yet
		c, err := svc.RemoveVariant(ctx, userID, colorID)
		require.NoError(t, err)
		assert.Empty(t, c.Variants)

		_, err = svc.AddVariant(ctx, userID, colorID)
		require.NoError(t, err)
		c, err = svc.RemoveVariant(ctx, userID, uuid.New().String())
		require.NoError(t, err)
		assert.Len(t, c.Variants, 1)
	})

	t.Run("clear empties the cart and is idempotent", func(t *testing.T) {
		repo := newMemRepo()
		colorID := repo.addCatalogVariant("Fjord Sofa", 899.00, false)
		svc := NewService(repo)

		_, err := svc.AddVariant(ctx, userID, colorID)
		require.NoError(t, err)
		require.NoError(t, svc.Clear(ctx, userID))
		require.NoError(t, svc.Clear(ctx, userID))

		c, err := svc.Get(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, c.Variants)
	})

	t.Run("clear without a cart is a no-op", func(t *testing.T) {
		svc := NewService(newMemRepo())
		require.NoError(t, svc.Clear(ctx, userID))
	})
}
