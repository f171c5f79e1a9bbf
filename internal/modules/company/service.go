package company

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

// Service defines company business logic.
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (*Company, error)
	Get(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
}

// CreateCompanyRequest holds the data for registering a manufacturer.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Website string `json:"website"`
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (*Company, error) {
	if req.Name == "" {
		return nil, apperr.Validation(apperr.Field("name", "name is required"))
	}

	c := &Company{
		ID:      uuid.New(),
		Name:    req.Name,
		Country: req.Country,
		Website: req.Website,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, apperr.Conflict("company name already registered")
		}
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id string) (*Company, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("company")
		}
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]*Company, error) {
	return s.repo.List(ctx)
}
