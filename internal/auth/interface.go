package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the JWT claims the session surface cares about.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWTVerifier validates session tokens for the interactive API surface.
type JWTVerifier interface {
	VerifyToken(tokenString string) (*Claims, error)
	Close() error
}
