package social

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateBlock(ctx context.Context, b *Block) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO blocked_users (id, blocker_id, blocked_id)
		VALUES ($1,$2,$3) RETURNING created_at`,
		b.ID, b.BlockerID, b.BlockedID).Scan(&b.CreatedAt)
}

func (r *postgresRepo) DeleteBlock(ctx context.Context, blockerID, blockedID string) error {
	blocker, err := uuid.Parse(blockerID)
	if err != nil {
		return nil
	}
	blocked, err := uuid.Parse(blockedID)
	if err != nil {
		return nil
	}
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM blocked_users WHERE blocker_id=$1 AND blocked_id=$2`, blocker, blocked)
	return err
}

func (r *postgresRepo) ListBlocks(ctx context.Context, blockerID string) ([]*Block, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, blocker_id, blocked_id, created_at
		FROM blocked_users WHERE blocker_id=$1 ORDER BY created_at DESC`, blockerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*Block
	for rows.Next() {
		b := &Block{}
		if err := rows.Scan(&b.ID, &b.BlockerID, &b.BlockedID, &b.CreatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *postgresRepo) IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error) {
	var blocked bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM blocked_users WHERE blocker_id=$1 AND blocked_id=$2
		)`, blockerID, blockedID).Scan(&blocked)
	return blocked, err
}

func (r *postgresRepo) CreateLike(ctx context.Context, l *Like) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO likes (id, user_id, post_id)
		VALUES ($1,$2,$3) RETURNING created_at`,
		l.ID, l.UserID, l.PostID).Scan(&l.CreatedAt)
}

func (r *postgresRepo) DeleteLike(ctx context.Context, userID, postID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	pid, err := uuid.Parse(postID)
	if err != nil {
		return nil
	}
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id=$1 AND post_id=$2`, uid, pid)
	return err
}

func (r *postgresRepo) ListLikesForPost(ctx context.Context, postID string) ([]*Like, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, post_id, created_at
		FROM likes WHERE post_id=$1 ORDER BY created_at ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []*Like
	for rows.Next() {
		l := &Like{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.PostID, &l.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

func isUnique(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isFKViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
