// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid is returned for malformed tokens, unknown signing
	// methods and bad signatures.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when the token's validity window has
	// passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries the account identifier inside a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenManager issues and validates signed session tokens. The signing
// key comes from configuration so tokens survive process restarts.
type TokenManager struct {
	secret   []byte
	validity time.Duration
}

// NewTokenManager creates a TokenManager with the given signing secret
// and token lifetime.
func NewTokenManager(secret string, validity time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), validity: validity}
}

// Issue creates a signed token bound to the given account identifier.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token and returns the encoded account
// identifier. The identifier is not guaranteed to still reference an
// existing account; callers must re-resolve it.
func (m *TokenManager) Validate(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}
