package httpadapter

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type senderKey struct{}

// Auth verifies client-supplied bearer tokens and exposes the
// authenticated sender identity to the handlers.
type Auth struct {
	secret []byte
}

// NewAuth returns an Auth verifying HS256 tokens signed with secret.
func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// Middleware rejects requests without a valid token. The userPhoneID
// claim becomes the sender identity for downstream handlers.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return a.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		sender, _ := claims["userPhoneID"].(string)
		if sender == "" {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), senderKey{}, sender)))
	})
}

// SenderFromContext returns the sender identity set by Middleware.
func SenderFromContext(ctx context.Context) string {
	sender, _ := ctx.Value(senderKey{}).(string)
	return sender
}
