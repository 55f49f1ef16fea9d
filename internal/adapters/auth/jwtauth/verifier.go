// Package jwtauth implementa auth.AuthVerifier con tokens HS256 firmados
// con un secreto compartido (JWT_SECRET). Sin secreto configurado, el
// middleware queda en modo dev (header X-Debug-User-ID).
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kisunla-flowsheet/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrSecretMissing  = errors.New("jwt secret not configured")
	ErrMissingUserID  = errors.New("claims missing user id")
	ErrUnexpectedAlgo = errors.New("unexpected signing method")
)

type tokenClaims struct {
	Email    string `json:"email,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretMissing
	}
	return &Verifier{secret: []byte(secret)}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedAlgo
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, errors.New("invalid token claims")
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return auth.Claims{}, ErrMissingUserID
	}

	return auth.Claims{
		UserID:   userID,
		Email:    claims.Email,
		TenantID: claims.TenantID,
	}, nil
}
