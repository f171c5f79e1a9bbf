package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*Cart, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	c := &Cart{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts WHERE user_id=$1`, uid).Scan(
		&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if c.Variants, err = r.listVariants(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) Ensure(ctx context.Context, userID string) (*Cart, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO carts (id, user_id) VALUES ($1,$2)
		ON CONFLICT (user_id) DO NOTHING`, uuid.New(), uid)
	if err != nil {
		return nil, err
	}
	return r.GetByUser(ctx, userID)
}

func (r *postgresRepo) AddVariant(ctx context.Context, cartID, colorID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_variants (cart_id, color_id) VALUES ($1,$2)
		ON CONFLICT (cart_id, color_id) DO NOTHING`, cartID, colorID)
	return err
}

func (r *postgresRepo) RemoveVariant(ctx context.Context, cartID, colorID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_variants WHERE cart_id=$1 AND color_id=$2`, cartID, colorID)
	return err
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_variants WHERE cart_id=$1`, cartID)
	return err
}

func (r *postgresRepo) GetVariant(ctx context.Context, colorID string) (*Variant, error) {
	cid, err := uuid.Parse(colorID)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	v := &Variant{}
	var modelID sql.NullString
	err = r.db.QueryRowContext(ctx, `
		SELECT cc.id, cc.item_id, c.name, cc.color, cc.model_id, c.price, c.archived
		FROM catalog_colors cc
		JOIN catalog c ON c.id = cc.item_id
		WHERE cc.id=$1`, cid).Scan(
		&v.ColorID, &v.ItemID, &v.ItemName, &v.Color, &modelID, &v.Price, &v.Archived)
	if err != nil {
		return nil, err
	}
	if modelID.Valid {
		v.ModelID = &modelID.String
	}
	return v, nil
}

func (r *postgresRepo) listVariants(ctx context.Context, cartID uuid.UUID) ([]*Variant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cc.id, cc.item_id, c.name, cc.color, cc.model_id, c.price, c.archived, cv.added_at
		FROM cart_variants cv
		JOIN catalog_colors cc ON cc.id = cv.color_id
		JOIN catalog c ON c.id = cc.item_id
		WHERE cv.cart_id=$1
		ORDER BY cv.added_at ASC`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*Variant
	for rows.Next() {
		v := &Variant{}
		var modelID sql.NullString
		if err := rows.Scan(&v.ColorID, &v.ItemID, &v.ItemName, &v.Color,
			&modelID, &v.Price, &v.Archived, &v.AddedAt); err != nil {
			return nil, err
		}
		if modelID.Valid {
			v.ModelID = &modelID.String
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
