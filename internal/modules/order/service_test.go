package order

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

type memRepo struct{ orders map[string]*Order }

func newMemRepo() *memRepo { return &memRepo{orders: map[string]*Order{}} }

func (m *memRepo) Create(_ context.Context, o *Order) error {
	o.CreatedAt = time.Now()
	m.orders[o.ID.String()] = o
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return o, nil
}

func (m *memRepo) ListByUser(_ context.Context, userID string) ([]*Order, error) {
	var out []*Order
	for _, o := range m.orders {
		if o.UserID != nil && o.UserID.String() == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func customer() CustomerInfo {
	return CustomerInfo{
		Name:    "Maja Novak",
		Email:   "maja@example.com",
		Address: "Celovska 1",
		City:    "Ljubljana",
		ZipCode: "1000",
		Country: "Slovenia",
	}
}

func TestOrderService(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshot is immune to later mutation", func(t *testing.T) {
		svc := NewService(newMemRepo())
		uid := uuid.New()
		lines := []LineItem{{ItemID: uuid.New().String(), Name: "Fjord Sofa", Price: 899.00, Color: "gray"}}

		o, err := svc.Create(ctx, &uid, customer(), lines, 899.00)
		require.NoError(t, err)

		lines[0].Name = "renamed after purchase"
		lines[0].Price = 1.00

		got, err := svc.Get(ctx, o.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Fjord Sofa", got.Furniture[0].Name)
		assert.Equal(t, 899.00, got.Furniture[0].Price)
	})

	t.Run("total is taken as given", func(t *testing.T) {
		svc := NewService(newMemRepo())
		uid := uuid.New()
		// a discounted charge: total differs from the line sum on purpose
		lines := []LineItem{{Name: "Fjord Sofa", Price: 899.00, Color: "gray"}}
		o, err := svc.Create(ctx, &uid, customer(), lines, 799.00)
		require.NoError(t, err)
		assert.Equal(t, 799.00, o.Total)
	})

	t.Run("guest order has no user", func(t *testing.T) {
		svc := NewService(newMemRepo())
		lines := []LineItem{{Name: "Fjord Sofa", Price: 899.00, Color: "gray"}}
		o, err := svc.Create(ctx, nil, customer(), lines, 899.00)
		require.NoError(t, err)
		assert.Nil(t, o.UserID)
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.Create(ctx, nil, CustomerInfo{Email: "not-an-email"}, nil, 0)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		// name, email, address, city, zip_code, country, furniture, total
		assert.Len(t, appErr.Fields, 8)
	})

	t.Run("email is optional but checked when present", func(t *testing.T) {
		svc := NewService(newMemRepo())
		c := customer()
		c.Email = ""
		lines := []LineItem{{Name: "Fjord Sofa", Price: 899.00, Color: "gray"}}
		_, err := svc.Create(ctx, nil, c, lines, 899.00)
		require.NoError(t, err)

		c.Email = "broken@"
		_, err = svc.Create(ctx, nil, c, lines, 899.00)
		require.Error(t, err)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.Get(ctx, uuid.New().String())
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("list returns only the user's orders", func(t *testing.T) {
		svc := NewService(newMemRepo())
		uid, other := uuid.New(), uuid.New()
		lines := []LineItem{{Name: "Fjord Sofa", Price: 899.00, Color: "gray"}}
		_, err := svc.Create(ctx, &uid, customer(), lines, 899.00)
		require.NoError(t, err)
		_, err = svc.Create(ctx, &other, customer(), lines, 899.00)
		require.NoError(t, err)

		mine, err := svc.ListForUser(ctx, uid.String())
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})
}
