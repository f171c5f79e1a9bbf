package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arborhaus/arbor-backend/internal/apperr"
	"github.com/arborhaus/arbor-backend/internal/modules/cart"
	"github.com/arborhaus/arbor-backend/internal/modules/mail"
	"github.com/arborhaus/arbor-backend/internal/modules/order"
	"github.com/arborhaus/arbor-backend/internal/modules/payment"
	"github.com/arborhaus/arbor-backend/internal/platform/metrics"
)

// Currency is the only currency the store charges in.
const Currency = "EUR"

// Request carries the shipping details submitted at checkout.
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Result is the outcome of a completed checkout.
type Result struct {
	Order   *order.Order    `json:"order"`
	Payment *payment.Result `json:"payment"`
}

// Service runs the purchase flow: price the cart, charge the gateway,
// record the order, then clear the cart.
type Service interface {
	Checkout(ctx context.Context, userID string, req Request) (*Result, error)
}

type service struct {
	carts   cart.Service
	orders  order.Service
	gateway payment.Gateway
	mailer  mail.Mailer
	logger  *zap.Logger
}

func NewService(carts cart.Service, orders order.Service, gateway payment.Gateway, mailer mail.Mailer, logger *zap.Logger) Service {
	return &service{carts: carts, orders: orders, gateway: gateway, mailer: mailer, logger: logger}
}

func (s *service) Checkout(ctx context.Context, userID string, req Request) (*Result, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		metrics.ObserveCheckout("error")
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(c.Variants) == 0 {
		metrics.ObserveCheckout("rejected")
		return nil, apperr.Validation(apperr.Field("cart", "cart is empty"))
	}

	customer := order.CustomerInfo{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		City:    req.City,
		ZipCode: req.ZipCode,
		Country: req.Country,
	}
	fields := customer.Validate()
	lines := make([]order.LineItem, 0, len(c.Variants))
	total := 0.0
	for _, v := range c.Variants {
		// items archived after they were added are caught here, before any charge
		if v.Archived {
			fields = append(fields, apperr.Field("cart", fmt.Sprintf("%q is no longer available", v.ItemName)))
			continue
		}
		line := order.LineItem{
			ItemID: v.ItemID.String(),
			Name:   v.ItemName,
			Price:  v.Price,
			Color:  v.Color,
		}
		if v.ModelID != nil {
			line.ModelID = *v.ModelID
		}
		lines = append(lines, line)
		total += v.Price
	}
	if len(fields) > 0 {
		metrics.ObserveCheckout("rejected")
		return nil, apperr.Validation(fields...)
	}

	ref, err := s.gateway.CreateIntent(ctx, total, Currency)
	if err != nil {
		metrics.ObserveCheckout("error")
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	res, err := s.gateway.Confirm(ctx, ref)
	if err != nil {
		metrics.ObserveCheckout("error")
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if res.Status != payment.StatusConfirmed {
		// the cart stays as it was; the user can retry
		metrics.ObserveCheckout("declined")
		return nil, apperr.PaymentDeclined(res.Message)
	}

	uid := c.UserID
	o, err := s.orders.Create(ctx, &uid, customer, lines, res.Amount)
	if err != nil {
		metrics.ObserveCheckout("error")
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// the order exists; a stale cart is recoverable, a lost order is not
		s.logger.Warn("clear cart after checkout failed",
			zap.String("user_id", userID),
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}

	if s.mailer != nil && req.Email != "" {
		if err := s.mailer.Send("order_confirmation", req.Email, map[string]interface{}{
			"Name":     req.Name,
			"OrderID":  o.ID.String(),
			"Total":    o.Total,
			"Currency": Currency,
			"Lines":    o.Furniture,
		}); err != nil {
			s.logger.Warn("order confirmation mail failed",
				zap.String("order_id", o.ID.String()),
				zap.Error(err))
		}
	}

	metrics.ObserveCheckout("confirmed")
	return &Result{Order: o, Payment: res}, nil
}
