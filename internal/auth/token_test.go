// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewTokenManagerRejectsShortSecret(t *testing.T) {
	if _, err := NewTokenManager("too-short", time.Hour); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
	if _, err := NewTokenManager(testSecret, 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := m.GenerateToken("viewer-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.ViewerID() != "viewer-42" {
		t.Fatalf("viewer ID = %q, want viewer-42", claims.ViewerID())
	}
}

func TestGenerateTokenRejectsEmptyViewer(t *testing.T) {
	m, _ := NewTokenManager(testSecret, time.Hour)
	if _, err := m.GenerateToken(""); err == nil {
		t.Fatal("expected error for empty viewer ID")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m1, _ := NewTokenManager(testSecret, time.Hour)
	m2, _ := NewTokenManager(strings.Repeat("x", 32), time.Hour)

	token, err := m1.GenerateToken("viewer-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m2.ValidateToken(token); err == nil {
		t.Fatal("expected validation failure with different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m, _ := NewTokenManager(testSecret, time.Hour)

	claims := &ViewerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "viewer-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.ValidateToken(signed); err == nil {
		t.Fatal("expected validation failure for expired token")
	}
}

func TestValidateTokenRejectsUnsignedAlgorithm(t *testing.T) {
	m, _ := NewTokenManager(testSecret, time.Hour)

	claims := &ViewerClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "viewer-1"},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.ValidateToken(signed); err == nil {
		t.Fatal("expected validation failure for alg=none token")
	}
}

func TestValidateTokenRejectsEmptySubject(t *testing.T) {
	m, _ := NewTokenManager(testSecret, time.Hour)

	claims := &ViewerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.ValidateToken(signed); err == nil {
		t.Fatal("expected validation failure for token without subject")
	}
}
