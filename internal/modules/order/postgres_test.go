package order

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("create serializes line items", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewPostgresRepository(db)

		uid := uuid.New()
		o := &Order{
			ID:           uuid.New(),
			UserID:       &uid,
			CustomerName: "Maja Novak",
			Address:      "Celovska 1",
			City:         "Ljubljana",
			ZipCode:      "1000",
			Country:      "Slovenia",
			Total:        899.00,
			Furniture:    []LineItem{{Name: "Fjord Sofa", Price: 899.00, Color: "gray"}},
		}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
			WithArgs(o.ID, o.UserID, o.CustomerName, o.Email, o.Address, o.City,
				o.ZipCode, o.Country, o.Total,
				[]byte(`[{"name":"Fjord Sofa","price":899,"color":"gray"}]`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, o))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get deserializes line items and null user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewPostgresRepository(db)

		id := uuid.New()
		rows := sqlmock.NewRows([]string{
			"id", "user_id", "customer_name", "email", "address", "city",
			"zip_code", "country", "total", "furniture", "created_at",
		}).AddRow(id, nil, "Maja Novak", "", "Celovska 1", "Ljubljana",
			"1000", "Slovenia", 899.00,
			[]byte(`[{"name":"Fjord Sofa","price":899,"color":"gray"}]`), time.Now())

		mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id=$1")).
			WithArgs(id).WillReturnRows(rows)

		o, err := repo.GetByID(ctx, id.String())
		require.NoError(t, err)
		assert.Nil(t, o.UserID)
		require.Len(t, o.Furniture, 1)
		assert.Equal(t, "Fjord Sofa", o.Furniture[0].Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id short-circuits to no rows", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewPostgresRepository(db)

		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.Error(t, err)
	})
}
