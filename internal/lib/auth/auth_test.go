package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, c claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, c).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func userClaims(exp time.Time) claims {
	return claims{
		Email: "traveler@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func TestVerifier_Identify(t *testing.T) {
	t.Parallel()

	v := NewVerifier(testSecret, "")
	future := time.Now().Add(time.Hour)

	t.Run("Valid token", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testSecret, jwt.SigningMethodHS256, userClaims(future))

		id, err := v.Identify(context.Background(), "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", id.UserID)
		assert.Equal(t, "traveler@example.com", id.Email)
	})

	t.Run("Lowercase scheme", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testSecret, jwt.SigningMethodHS256, userClaims(future))

		_, err := v.Identify(context.Background(), "bearer "+token)
		assert.NoError(t, err)
	})

	testCases := []struct {
		name          string
		authorization func(t *testing.T) string
		expectedErr   error
	}{
		{
			name:          "Missing header",
			authorization: func(t *testing.T) string { return "" },
			expectedErr:   ErrMissingToken,
		},
		{
			name:          "Wrong scheme",
			authorization: func(t *testing.T) string { return "Basic dXNlcjpwYXNz" },
			expectedErr:   ErrMissingToken,
		},
		{
			name: "Wrong secret",
			authorization: func(t *testing.T) string {
				return "Bearer " + signToken(t, "other-secret", jwt.SigningMethodHS256, userClaims(future))
			},
			expectedErr: ErrInvalidToken,
		},
		{
			name: "Expired",
			authorization: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, userClaims(time.Now().Add(-time.Hour)))
			},
			expectedErr: ErrInvalidToken,
		},
		{
			name: "Unexpected algorithm",
			authorization: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS512, userClaims(future))
			},
			expectedErr: ErrInvalidToken,
		},
		{
			name: "Anon key",
			authorization: func(t *testing.T) string {
				c := userClaims(future)
				c.Role = "anon"
				c.Subject = ""
				return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, c)
			},
			expectedErr: ErrInvalidToken,
		},
		{
			name:          "Garbage token",
			authorization: func(t *testing.T) string { return "Bearer not-a-jwt" },
			expectedErr:   ErrInvalidToken,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			id, err := v.Identify(context.Background(), tc.authorization(t))
			assert.Nil(t, id)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestVerifier_RejectsAnonKey(t *testing.T) {
	t.Parallel()

	// signed with the project secret, so only the key match rejects it
	anonKey := signToken(t, testSecret, jwt.SigningMethodHS256, userClaims(time.Now().Add(time.Hour)))

	v := NewVerifier(testSecret, anonKey)

	_, err := v.Identify(context.Background(), "Bearer "+anonKey)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := signToken(t, testSecret, jwt.SigningMethodHS256, claims{
		Email:            "other@example.com",
		Role:             "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-2", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})

	id, err := v.Identify(context.Background(), "Bearer "+other)
	require.NoError(t, err)
	assert.Equal(t, "user-2", id.UserID)
}
