package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

type ctxKey struct{}

// Require returns middleware that resolves the Authorization bearer token to
// a user id in the request context, or responds 401.
func Require(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				apperr.Respond(w, apperr.Unauthenticated("missing bearer token"))
				return
			}

			claims := &jwt.StandardClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
				func(t *jwt.Token) (interface{}, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, jwt.ErrSignatureInvalid
					}
					return key, nil
				})
			if err != nil || !token.Valid || claims.Subject == "" {
				apperr.Respond(w, apperr.Unauthenticated("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id from the context, or "" when the
// request did not pass through Require.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
