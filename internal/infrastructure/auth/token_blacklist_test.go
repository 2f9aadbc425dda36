package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	t.Run("unknown JTI is not revoked", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()

		revoked, err := blacklist.IsRevoked(context.Background(), "unknown-jti")

		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked JTI is reported", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()

		require.NoError(t, blacklist.Revoke(context.Background(), "jti-1", time.Minute))

		revoked, err := blacklist.IsRevoked(context.Background(), "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("entry lapses with the token lifetime", func(t *testing.T) {
		blacklist := NewInMemoryTokenBlacklist()

		require.NoError(t, blacklist.Revoke(context.Background(), "jti-1", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		revoked, err := blacklist.IsRevoked(context.Background(), "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
