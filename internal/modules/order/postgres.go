package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	furniture, err := json.Marshal(o.Furniture)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders
		  (id, user_id, customer_name, email, address, city, zip_code, country, total, furniture)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID, o.UserID, o.CustomerName, o.Email, o.Address, o.City,
		o.ZipCode, o.Country, o.Total, furniture)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	return scanOrder(r.db.QueryRowContext(ctx, `
		SELECT id, user_id, customer_name, email, address, city, zip_code, country, total, furniture, created_at
		FROM orders WHERE id=$1`, uid).Scan)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, customer_name, email, address, city, zip_code, country, total, furniture, created_at
		FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(scan func(...interface{}) error) (*Order, error) {
	o := &Order{}
	var userID sql.NullString
	var furniture []byte
	err := scan(&o.ID, &userID, &o.CustomerName, &o.Email, &o.Address, &o.City,
		&o.ZipCode, &o.Country, &o.Total, &furniture, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		uid, _ := uuid.Parse(userID.String)
		o.UserID = &uid
	}
	if err := json.Unmarshal(furniture, &o.Furniture); err != nil {
		return nil, fmt.Errorf("unmarshal line items: %w", err)
	}
	return o, nil
}
