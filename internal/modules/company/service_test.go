package company

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

type memRepo struct {
	byID   map[string]*Company
	byName map[string]*Company
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]*Company{}, byName: map[string]*Company{}}
}

func (m *memRepo) Create(_ context.Context, c *Company) error {
	if _, ok := m.byName[c.Name]; ok {
		return &pq.Error{Code: "23505"}
	}
	m.byID[c.ID.String()] = c
	m.byName[c.Name] = c
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Company, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *memRepo) List(_ context.Context) ([]*Company, error) {
	var out []*Company
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, nil
}

func TestCompanyService(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		svc := NewService(newMemRepo())
		c, err := svc.Create(ctx, CreateCompanyRequest{Name: "Nordform", Country: "Denmark"})
		require.NoError(t, err)

		got, err := svc.Get(ctx, c.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Nordform", got.Name)
	})

	t.Run("name is required", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.Create(ctx, CreateCompanyRequest{Country: "Denmark"})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.Create(ctx, CreateCompanyRequest{Name: "Nordform"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, CreateCompanyRequest{Name: "Nordform"})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.Get(ctx, "3f2b9a10-1111-4222-8333-444455556666")
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}
