package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, ttl time.Duration) *Issuer {
	t.Helper()
	issuer, err := NewIssuer([]byte("test-signing-key"), ttl)
	require.NoError(t, err)
	return issuer
}

func TestIssueAndValidate(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)

	token, expiresAt, err := issuer.Issue("acct-1", "institution")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	subject, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", subject)
}

func TestValidateRejects(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := issuer.Validate("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other, err := NewIssuer([]byte("other-key"), time.Hour)
		require.NoError(t, err)
		token, _, err := other.Issue("acct-1", "")
		require.NoError(t, err)

		_, err = issuer.Validate(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestIssuer(t, time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := expired.Issue("acct-1", "")
		require.NoError(t, err)

		_, err = issuer.Validate(token)
		assert.Error(t, err)
	})

	t.Run("empty signing key is rejected at construction", func(t *testing.T) {
		_, err := NewIssuer(nil, time.Hour)
		assert.Error(t, err)
	})
}
