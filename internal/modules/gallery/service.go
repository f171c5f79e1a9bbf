package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/arborhaus/arbor-backend/internal/apperr"
	"github.com/arborhaus/arbor-backend/internal/modules/filestore"
)

// maxCaptionLen keeps captions to a short paragraph.
const maxCaptionLen = 500

// Service manages the community gallery. Images live in the file store,
// metadata in the posts table.
type Service interface {
	CreatePost(ctx context.Context, userID, caption, filename string, image io.Reader) (*Post, error)
	Get(ctx context.Context, id string) (*Post, error)
	Feed(ctx context.Context, viewerID string) ([]*Post, error)
	ListForUser(ctx context.Context, userID string) ([]*Post, error)
	// Delete removes a post and its stored image. Only the author may delete.
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	repo   Repository
	files  filestore.Store
	logger *zap.Logger
}

func NewService(repo Repository, files filestore.Store, logger *zap.Logger) Service {
	return &service{repo: repo, files: files, logger: logger}
}

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

func (s *service) CreatePost(ctx context.Context, userID, caption, filename string, image io.Reader) (*Post, error) {
	var fields []apperr.FieldError
	uid, err := uuid.Parse(userID)
	if err != nil {
		fields = append(fields, apperr.Field("user_id", "malformed user id"))
	}
	if len(caption) > maxCaptionLen {
		fields = append(fields, apperr.Field("caption", fmt.Sprintf("caption exceeds %d characters", maxCaptionLen)))
	}
	if image == nil || filename == "" {
		fields = append(fields, apperr.Field("image", "image file is required"))
	} else if dot := strings.LastIndex(filename, "."); dot < 0 || !imageExtensions[strings.ToLower(filename[dot:])] {
		fields = append(fields, apperr.Field("image", "unsupported image format"))
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	key, err := s.files.Put(filename, image)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	p := &Post{ID: uuid.New(), UserID: uid, Caption: caption, ImageName: key}
	if err := s.repo.Create(ctx, p); err != nil {
		// don't leave the blob orphaned
		if delErr := s.files.Delete(key); delErr != nil {
			s.logger.Warn("orphaned gallery image", zap.String("key", key), zap.Error(delErr))
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, apperr.NotFound("user")
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("post")
		}
		return nil, err
	}
	return p, nil
}

func (s *service) Feed(ctx context.Context, viewerID string) ([]*Post, error) {
	posts, err := s.repo.Feed(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*Post{}
	}
	return posts, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]*Post, error) {
	posts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*Post{}
	}
	return posts, nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID.String() != userID {
		return apperr.Forbidden("only the author can delete a post")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if err := s.files.Delete(p.ImageName); err != nil {
		s.logger.Warn("delete gallery image failed", zap.String("key", p.ImageName), zap.Error(err))
	}
	return nil
}
