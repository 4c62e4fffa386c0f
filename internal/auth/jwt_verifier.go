package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"zapflow/internal/domain"
)

// JWKSVerifier validates JWTs against a JWKS endpoint. Keys are cached and
// refreshed by keyfunc based on HTTP cache headers.
type JWKSVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWTVerifier creates a verifier fetching public keys from jwksURL.
func NewJWTVerifier(jwksURL string, logger *slog.Logger) (JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(context.Background(), []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL)

	return &JWKSVerifier{jwks: jwks, logger: logger}, nil
}

// VerifyToken validates a session token and extracts its claims.
func (v *JWKSVerifier) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.jwks.Keyfunc)
	if err != nil || !token.Valid {
		return nil, &domain.UnauthorizedError{Message: "invalid session token"}
	}

	// Asymmetric algorithms only, to rule out algorithm confusion.
	switch token.Method.Alg() {
	case "RS256", "ES256":
	default:
		v.logger.Warn("token uses unexpected algorithm", "algorithm", token.Method.Alg())
		return nil, &domain.UnauthorizedError{Message: "invalid session token"}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, &domain.UnauthorizedError{Message: "invalid session token"}
	}

	return claims, nil
}

// Close releases verifier resources. keyfunc manages its own lifecycle, so
// this exists for graceful-shutdown symmetry.
func (v *JWKSVerifier) Close() error {
	return nil
}
