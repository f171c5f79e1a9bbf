package gallery

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Post) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO gallery_posts (id, user_id, caption, image_name)
		VALUES ($1,$2,$3,$4) RETURNING created_at`,
		p.ID, p.UserID, p.Caption, p.ImageName).Scan(&p.CreatedAt)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Post, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	p := &Post{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, user_id, caption, image_name, created_at
		FROM gallery_posts WHERE id=$1`, uid).
		Scan(&p.ID, &p.UserID, &p.Caption, &p.ImageName, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Feed(ctx context.Context, viewerID string) ([]*Post, error) {
	query := `
		SELECT p.id, p.user_id, p.caption, p.image_name, p.created_at
		FROM gallery_posts p`
	var args []interface{}
	if viewerID != "" {
		query += `
		WHERE NOT EXISTS (
			SELECT 1 FROM blocked_users b
			WHERE b.blocker_id = $1 AND b.blocked_id = p.user_id
		)`
		args = append(args, viewerID)
	}
	query += `
		ORDER BY p.created_at DESC LIMIT 100`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, caption, image_name, created_at
		FROM gallery_posts WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM gallery_posts WHERE id=$1`, id)
	return err
}

func collect(rows *sql.Rows) ([]*Post, error) {
	var posts []*Post
	for rows.Next() {
		p := &Post{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Caption, &p.ImageName, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
