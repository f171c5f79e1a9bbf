package user

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

type memRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]*User{}, byEmail: map[string]*User{}}
}

func (m *memRepo) CreateUser(_ context.Context, u *User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return &pq.Error{Code: "23505"}
	}
	u.CreatedAt = time.Now()
	m.byID[u.ID.String()] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *memRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *memRepo) DeleteUser(_ context.Context, id string) error {
	u, ok := m.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(m.byID, id)
	delete(m.byEmail, u.Email)
	return nil
}

type recordingMailer struct {
	sent []string
	fail bool
}

func (m *recordingMailer) Send(templateName, _ string, _ map[string]interface{}) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, templateName)
	return nil
}

func registration() RegisterRequest {
	return RegisterRequest{
		Email:     "maja@example.com",
		Password:  "hunter2hunter2",
		FirstName: "Maja",
		LastName:  "Novak",
	}
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and sends a welcome", func(t *testing.T) {
		mailer := &recordingMailer{}
		svc := NewService(newMemRepo(), mailer, zap.NewNop())

		u, err := svc.RegisterUser(ctx, registration())
		require.NoError(t, err)
		assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2hunter2")))
		assert.Equal(t, []string{"welcome"}, mailer.sent)
	})

	t.Run("rejects bad email and short password together", func(t *testing.T) {
		svc := NewService(newMemRepo(), nil, zap.NewNop())
		_, err := svc.RegisterUser(ctx, RegisterRequest{Email: "nope", Password: "short"})
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Len(t, appErr.Fields, 2)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc := NewService(newMemRepo(), nil, zap.NewNop())
		_, err := svc.RegisterUser(ctx, registration())
		require.NoError(t, err)

		_, err = svc.RegisterUser(ctx, registration())
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
	})

	t.Run("mail failure does not fail registration", func(t *testing.T) {
		mailer := &recordingMailer{fail: true}
		svc := NewService(newMemRepo(), mailer, zap.NewNop())
		_, err := svc.RegisterUser(ctx, registration())
		require.NoError(t, err)
	})
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), nil, zap.NewNop())

	u, err := svc.RegisterUser(ctx, registration())
	require.NoError(t, err)

	t.Run("credentials resolve by email", func(t *testing.T) {
		id, hash, err := svc.Credentials(ctx, u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID.String(), id)
		assert.Equal(t, u.PasswordHash, hash)
	})

	t.Run("delete removes the account", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(ctx, u.ID.String()))

		_, err := svc.GetUser(ctx, u.ID.String())
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)

		err = svc.DeleteUser(ctx, u.ID.String())
		appErr = apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}
