// Package auth turns an Authorization header into the caller's identity by
// verifying the HS256 access token issued by the auth provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travelAgency/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret  []byte
	anonKey string
	leeway  time.Duration
}

// NewVerifier builds a verifier for tokens signed with secret. A non-empty
// anonKey is the public client key; presenting it as a bearer is refused.
func NewVerifier(secret, anonKey string) *Verifier {
	return &Verifier{secret: []byte(secret), anonKey: anonKey, leeway: 30 * time.Second}
}

func (v *Verifier) Identify(_ context.Context, authorization string) (*models.Identity, error) {
	const op = "lib.auth.Identify"

	raw, err := BearerToken(authorization)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if v.anonKey != "" && raw == v.anonKey {
		return nil, fmt.Errorf("%s: %w: anon key carries no identity", op, ErrInvalidToken)
	}

	var c claims
	_, err = jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidToken, err)
	}

	// anon keys are signed with the same secret but carry no subject
	if c.Subject == "" || c.Role == "anon" {
		return nil, fmt.Errorf("%s: %w: no authenticated subject", op, ErrInvalidToken)
	}

	return &models.Identity{UserID: c.Subject, Email: c.Email}, nil
}

func BearerToken(authorization string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}
