package user

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arborhaus/arbor-backend/internal/apperr"
	"github.com/arborhaus/arbor-backend/internal/modules/mail"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type service struct {
	repo   Repository
	mailer mail.Mailer
	log    *zap.Logger
}

// NewService creates a new user service. The mailer is used best-effort for
// the welcome mail and may be nil in tests.
func NewService(repo Repository, mailer mail.Mailer, log *zap.Logger) Service {
	return &service{repo: repo, mailer: mailer, log: log}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	var fields []apperr.FieldError
	if !emailPattern.MatchString(req.Email) {
		fields = append(fields, apperr.Field("email", "malformed email address"))
	}
	if len(req.Password) < 8 {
		fields = append(fields, apperr.Field("password", "must be at least 8 characters"))
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.Send("welcome", u.Email, map[string]interface{}{
			"Name": u.FirstName,
		}); err != nil {
			s.log.Warn("welcome mail delivery failed",
				zap.String("user_id", u.ID.String()), zap.Error(err))
		}
	}

	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user")
		}
		return err
	}
	return nil
}

func (s *service) Credentials(ctx context.Context, email string) (string, string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	return u.ID.String(), u.PasswordHash, nil
}
