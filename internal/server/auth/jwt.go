// Package auth issues and verifies the signed credentials handed to portal
// members after login or registration.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/legalchicks/lcen-portal/internal/common"
)

// DefaultValidity is how long an issued token stays valid.
const DefaultValidity = 7 * 24 * time.Hour

// ErrEmptySecret is returned when no signing secret is configured.
var ErrEmptySecret = errors.New("jwt secret is not configured")

// Claims are the registered claims plus the member identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Role   common.Role `json:"role"`
}

// Subject is what a verified token resolves to.
type Subject struct {
	UserID string
	Email  string
	Role   common.Role
}

// TokenCodec signs and verifies HS256 tokens with a shared secret.
type TokenCodec struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenCodec refuses an empty secret. A non-positive validity selects
// DefaultValidity.
func NewTokenCodec(secret string, validity time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if validity <= 0 {
		validity = DefaultValidity
	}
	return &TokenCodec{secret: []byte(secret), validity: validity, now: time.Now}, nil
}

// WithClock returns a copy of c that reads time from now. Used by tests.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue mints a token for s that expires after the configured validity.
func (c *TokenCodec) Issue(s Subject) (string, error) {
	issuedAt := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.validity)),
		},
		UserID: s.UserID,
		Email:  s.Email,
		Role:   s.Role,
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry. It returns common.ErrTokenExpired for
// an expired token and common.ErrInvalidToken for anything else wrong.
func (c *TokenCodec) Verify(tokenString string) (*Subject, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" || !claims.Role.IsValid() {
		return nil, common.ErrInvalidToken
	}

	return &Subject{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
