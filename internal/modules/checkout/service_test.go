package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arborhaus/arbor-backend/internal/apperr"
	"github.com/arborhaus/arbor-backend/internal/modules/cart"
	"github.com/arborhaus/arbor-backend/internal/modules/mail"
	"github.com/arborhaus/arbor-backend/internal/modules/order"
	"github.com/arborhaus/arbor-backend/internal/modules/payment"
)

type fakeCarts struct {
	cart    *cart.Cart
	cleared bool
}

func (f *fakeCarts) Get(_ context.Context, _ string) (*cart.Cart, error) { return f.cart, nil }
func (f *fakeCarts) AddVariant(_ context.Context, _, _ string) (*cart.Cart, error) {
	return f.cart, nil
}
func (f *fakeCarts) RemoveVariant(_ context.Context, _, _ string) (*cart.Cart, error) {
	return f.cart, nil
}
func (f *fakeCarts) Clear(_ context.Context, _ string) error {
	f.cleared = true
	return nil
}

type fakeOrderRepo struct{ orders []*order.Order }

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	f.orders = append(f.orders, o)
	return nil
}
func (f *fakeOrderRepo) GetByID(_ context.Context, _ string) (*order.Order, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeOrderRepo) ListByUser(_ context.Context, _ string) ([]*order.Order, error) {
	return f.orders, nil
}

type recordingMailer struct {
	sent []string
	fail bool
}

func (m *recordingMailer) Send(templateName, _ string, _ map[string]interface{}) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, templateName)
	return nil
}

func variant(name string, price float64, archived bool) *cart.Variant {
	return &cart.Variant{
		ColorID:  uuid.New(),
		ItemID:   uuid.New(),
		ItemName: name,
		Color:    "oak",
		Price:    price,
		Archived: archived,
	}
}

func shipping() Request {
	return Request{
		Name:    "Maja Novak",
		Email:   "maja@example.com",
		Address: "Celovska 1",
		City:    "Ljubljana",
		ZipCode: "1000",
		Country: "Slovenia",
	}
}

func newCheckout(c *cart.Cart) (Service, *fakeCarts, *fakeOrderRepo, *recordingMailer) {
	carts := &fakeCarts{cart: c}
	repo := &fakeOrderRepo{}
	mailer := &recordingMailer{}
	svc := NewService(carts, order.NewService(repo), payment.NewCardGateway("sk_test", "sandbox"), mailer, zap.NewNop())
	return svc, carts, repo, mailer
}

var _ mail.Mailer = (*recordingMailer)(nil)

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("confirmed payment records order and clears cart", func(t *testing.T) {
		c := &cart.Cart{ID: uuid.New(), UserID: userID, Variants: []*cart.Variant{
			variant("Fjord Sofa", 899.00, false),
			variant("Alma Side Table", 129.50, false),
		}}
		svc, carts, repo, mailer := newCheckout(c)

		res, err := svc.Checkout(ctx, userID.String(), shipping())
		require.NoError(t, err)

		assert.Equal(t, payment.StatusConfirmed, res.Payment.Status)
		assert.Equal(t, 1028.50, res.Order.Total)
		require.NotNil(t, res.Order.UserID)
		assert.Equal(t, userID, *res.Order.UserID)
		assert.Len(t, res.Order.Furniture, 2)
		assert.Equal(t, "Fjord Sofa", res.Order.Furniture[0].Name)

		require.Len(t, repo.orders, 1)
		assert.True(t, carts.cleared)
		assert.Equal(t, []string{"order_confirmation"}, mailer.sent)
	})

	t.Run("declined payment leaves cart and records nothing", func(t *testing.T) {
		// sandbox gateway declines totals ending in 13 cents
		c := &cart.Cart{ID: uuid.New(), UserID: userID, Variants: []*cart.Variant{
			variant("Fjord Sofa", 899.13, false),
		}}
		svc, carts, repo, mailer := newCheckout(c)

		_, err := svc.Checkout(ctx, userID.String(), shipping())
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusPaymentRequired, appErr.Code)

		assert.Empty(t, repo.orders)
		assert.False(t, carts.cleared)
		assert.Empty(t, mailer.sent)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		c := &cart.Cart{ID: uuid.New(), UserID: userID, Variants: []*cart.Variant{}}
		svc, _, repo, _ := newCheckout(c)

		_, err := svc.Checkout(ctx, userID.String(), shipping())
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Empty(t, repo.orders)
	})

	t.Run("archived variant blocks the whole checkout", func(t *testing.T) {
		c := &cart.Cart{ID: uuid.New(), UserID: userID, Variants: []*cart.Variant{
			variant("Fjord Sofa", 899.00, false),
			variant("Retired Lamp", 59.00, true),
		}}
		svc, carts, repo, _ := newCheckout(c)

		_, err := svc.Checkout(ctx, userID.String(), shipping())
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		require.Len(t, appErr.Fields, 1)
		assert.Contains(t, appErr.Fields[0].Reason, "Retired Lamp")

		assert.Empty(t, repo.orders)
		assert.False(t, carts.cleared)
	})

	t.Run("mail failure does not fail the checkout", func(t *testing.T) {
		c := &cart.Cart{ID: uuid.New(), UserID: userID, Variants: []*cart.Variant{
			variant("Fjord Sofa", 899.00, false),
		}}
		svc, carts, repo, mailer := newCheckout(c)
		mailer.fail = true

		res, err := svc.Checkout(ctx, userID.String(), shipping())
		require.NoError(t, err)
		assert.Equal(t, payment.StatusConfirmed, res.Payment.Status)
		require.Len(t, repo.orders, 1)
		assert.True(t, carts.cleared)
	})

	t.Run("missing shipping details reject before charging", func(t *testing.T) {
		c := &cart.Cart{ID: uuid.New(), UserID: userID, Variants: []*cart.Variant{
			variant("Fjord Sofa", 899.00, false),
		}}
		svc, carts, _, _ := newCheckout(c)

		_, err := svc.Checkout(ctx, userID.String(), Request{Name: "Maja Novak"})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.False(t, carts.cleared)
	})
}
