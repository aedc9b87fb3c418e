// Package auth provides password hashing and session token utilities.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a token that failed verification for any
// reason. Callers must not distinguish between malformed, forged, and
// expired tokens when reporting the failure outward.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenService issues and verifies signed, time-bounded session tokens.
// The signing key is process-wide configuration; verification is pure and
// safe for unbounded concurrent use.
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService creates a TokenService with the given signing secret
// and token lifetime.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		key: []byte(secret),
		ttl: ttl,
	}
}

// Issue creates a signed HS256 token for the given subject, valid from
// now until now plus the configured lifetime.
func (s *TokenService) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// Verify parses and validates a token, returning its claims.
// All failure modes (malformed encoding, bad signature, expiry) collapse
// into ErrInvalidToken so the rejection reason never leaks to clients.
func (s *TokenService) Verify(token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
