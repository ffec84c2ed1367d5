package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"reviewd/internal/config"
	"reviewd/pkg/logger"
	"reviewd/pkg/serrors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type userIDContextKey struct{}

// GetUserIDFromContext returns the authenticated subject stored by the
// security middleware, or an empty string when auth is disabled.
func GetUserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDContextKey{}).(string)

	return id
}

// SecHandlerOptions configure bearer-token verification for the v1 routes.
type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key tokens are verified
	// against. An empty key disables authentication.
	PublicKey string
}

// NewSecHandlerOptions maps the application config to SecHandlerOptions.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler verifies RS256 bearer tokens on the v1 routes and stores the
// token subject in the request context.
type SecHandler struct {
	key *rsa.PublicKey
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || opts.PublicKey == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{key: key}, nil
}

// Middleware rejects requests without a valid bearer token. With no key
// configured it passes everything through, which is only acceptable for
// local development.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	if s.key == nil {
		logger.Warn(context.Background(), "JWT public key not configured, API authentication is disabled")

		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			writeError(r.Context(), w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		claims := jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, &claims,
			func(*jwt.Token) (any, error) { return s.key, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
		if err != nil {
			writeError(r.Context(), w, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid bearer token"))

			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey{}, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
