package middleware

import (
	"context"
	"errors"
	"library-lending/internal/config"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type staffContextKey struct{}

// StaffClaims identify the librarian operating the desk.
type StaffClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// StaffFromContext returns the authenticated staff subject, or "" when auth is disabled.
func StaffFromContext(ctx context.Context) string {
	staff, _ := ctx.Value(staffContextKey{}).(string)
	return staff
}

func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	authLogger := logger.With("component", "AuthMiddleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := parseBearer(r.Header.Get("Authorization"), cfg.JWTSecret)
			if err != nil {
				authLogger.WarnContext(r.Context(), "Rejected request", "path", r.URL.Path, "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"message":"Unauthorized"}}`))
				return
			}

			authLogger.DebugContext(r.Context(), "Authenticated request", "staff", claims.Subject)
			ctx := context.WithValue(r.Context(), staffContextKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseBearer(header, secret string) (*StaffClaims, error) {
	if header == "" {
		return nil, errors.New("missing Authorization header")
	}
	scheme, tokenString, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
		return nil, errors.New("invalid Authorization header format")
	}

	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
