package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "1")

	t.Run("round trip preserves claims", func(t *testing.T) {
		token, err := GenerateToken(42, "alice", true)
		require.NoError(t, err)

		claims, err := ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		token, err := GenerateToken(42, "alice", false)
		require.NoError(t, err)

		_, err = ValidateToken(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		token, err := GenerateToken(42, "alice", false)
		require.NoError(t, err)

		t.Setenv("JWT_SECRET", "other-secret")
		_, err = ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestGenerateTokenConfig(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("JWT_EXPIRY_HOURS", "1")

		_, err := GenerateToken(1, "bob", false)
		assert.Error(t, err)
	})

	t.Run("bad expiry", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRY_HOURS", "soon")

		_, err := GenerateToken(1, "bob", false)
		assert.Error(t, err)
	})
}
