package account

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		password, err := GenerateTempPassword(10)
		require.NoError(t, err)
		require.Len(t, password, 10)
		for _, c := range password {
			assert.Contains(t, passwordAlphabet, string(c))
		}
		seen[password] = true
	}
	assert.Greater(t, len(seen), 1, "passwords must not repeat deterministically")
}

func TestInMemoryIssuer(t *testing.T) {
	issuer := NewInMemory()
	ctx := context.Background()

	acct, err := issuer.CreateAccount(ctx, "ada@example.com", "s3cret", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, "Ada", acct.DisplayName)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := issuer.CreateAccount(ctx, "ada@example.com", "other", "Ada Again")
		assert.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("correct credentials authenticate", func(t *testing.T) {
		got, err := issuer.Authenticate(ctx, "ada@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, acct.ID, got.ID)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := issuer.Authenticate(ctx, "ada@example.com", strings.ToUpper("s3cret"))
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		_, err := issuer.Authenticate(ctx, "ghost@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}
