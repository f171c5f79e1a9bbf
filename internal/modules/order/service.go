package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

// Service is the single write path into the order ledger plus its reads.
type Service interface {
	// Create records a completed purchase. The line items are deep-copied
	// at call time, and the total is the amount the payment collaborator
	// confirmed — it is trusted, never recomputed from the lines.
	Create(ctx context.Context, userID *uuid.UUID, customer CustomerInfo, lines []LineItem, total float64) (*Order, error)

	Get(ctx context.Context, id string) (*Order, error)
	ListForUser(ctx context.Context, userID string) ([]*Order, error)
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

// Validate reports every missing or malformed shipping field. Checkout calls
// this before charging so a bad address never costs the customer money.
func (c CustomerInfo) Validate() []apperr.FieldError {
	var fields []apperr.FieldError
	if c.Name == "" {
		fields = append(fields, apperr.Field("name", "name is required"))
	}
	if c.Email != "" && !emailPattern.MatchString(c.Email) {
		fields = append(fields, apperr.Field("email", "malformed email address"))
	}
	required := []struct{ field, value string }{
		{"address", c.Address},
		{"city", c.City},
		{"zip_code", c.ZipCode},
		{"country", c.Country},
	}
	for _, rq := range required {
		if rq.value == "" {
			fields = append(fields, apperr.Field(rq.field, rq.field+" is required"))
		}
	}
	return fields
}

func (s *service) Create(ctx context.Context, userID *uuid.UUID, customer CustomerInfo, lines []LineItem, total float64) (*Order, error) {
	fields := customer.Validate()
	if len(lines) == 0 {
		fields = append(fields, apperr.Field("furniture", "order must contain at least one line item"))
	}
	if total <= 0 {
		fields = append(fields, apperr.Field("total", "total must be greater than 0"))
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	o := &Order{
		ID:           uuid.New(),
		UserID:       userID,
		CustomerName: customer.Name,
		Email:        customer.Email,
		Address:      customer.Address,
		City:         customer.City,
		ZipCode:      customer.ZipCode,
		Country:      customer.Country,
		Total:        total,
		// value copy: the caller's slice can change after this returns
		Furniture: append([]LineItem(nil), lines...),
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return o, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("order")
		}
		return nil, err
	}
	return o, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
