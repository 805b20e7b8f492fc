// Package token issues and verifies stateless session tokens signed with
// HMAC-SHA256.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jokehub/src/core/domain"
	"jokehub/src/core/ports"
	"jokehub/src/infra/config"
)

// minSecretLength guards against weak signing keys at startup.
const minSecretLength = 32

// JWTManager implements ports.TokenManager using HS256-signed JWTs.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.TokenManager = (*JWTManager)(nil)

type sessionClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a token manager from the auth configuration.
func NewJWTManager(cfg config.AuthConfig) (*JWTManager, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	return &JWTManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the given user with the configured lifetime.
func (m *JWTManager) Issue(userID int64) (string, error) {
	now := m.now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiration and returns the encoded user ID.
func (m *JWTManager) Verify(tokenString string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&sessionClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.NewUnauthorizedError(domain.CodeInvalidToken, "token expired")
		}
		return 0, domain.NewUnauthorizedError(domain.CodeInvalidToken, "invalid token")
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.UserID <= 0 {
		return 0, domain.NewUnauthorizedError(domain.CodeInvalidToken, "invalid token")
	}
	return claims.UserID, nil
}
