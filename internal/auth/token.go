// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

// Package auth issues and validates viewer tokens. Tokens identify a viewer
// so the feed can apply their stored capabilities; they carry no roles and
// grant no privileges. Session management is out of scope: tokens are
// stateless HS256 JWTs validated entirely from the shared secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret indicates the token secret was missing or too short.
var ErrNoSecret = errors.New("token secret must be at least 32 bytes")

// minSecretLen guards against trivially brute-forceable HMAC keys.
const minSecretLen = 32

// ViewerClaims is the claim set carried by a viewer token. The registered
// Subject holds the viewer ID.
type ViewerClaims struct {
	jwt.RegisteredClaims
}

// ViewerID returns the token subject.
func (c *ViewerClaims) ViewerID() string {
	return c.Subject
}

// TokenManager creates and validates viewer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager. The secret must be at least 32
// bytes; ttl bounds token lifetime and must be positive.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if len(secret) < minSecretLen {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %v", ttl)
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// GenerateToken mints a signed token whose subject is the viewer ID.
func (m *TokenManager) GenerateToken(viewerID string) (string, error) {
	if viewerID == "" {
		return "", fmt.Errorf("viewer ID must not be empty")
	}

	now := time.Now()
	claims := &ViewerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   viewerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature, algorithm, and time claims, and
// returns the viewer claims. Rejecting non-HMAC algorithms blocks
// algorithm-confusion attacks.
func (m *TokenManager) ValidateToken(tokenString string) (*ViewerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ViewerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*ViewerClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
