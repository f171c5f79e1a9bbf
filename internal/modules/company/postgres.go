package company

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Company) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, country, website)
		VALUES ($1,$2,$3,$4)`,
		c.ID, c.Name, c.Country, c.Website)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Company, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	c := &Company{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, country, website, created_at, updated_at
		FROM companies WHERE id=$1`, uid).Scan(
		&c.ID, &c.Name, &c.Country, &c.Website, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Company, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, country, website, created_at, updated_at
		FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*Company
	for rows.Next() {
		c := &Company{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Country, &c.Website, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
