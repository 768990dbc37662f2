package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefreshToken_Validation(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour)

	_, err := NewRefreshToken("", "tok", future, "1.2.3.4")
	assert.Error(t, err)

	_, err = NewRefreshToken("user-id", "", future, "1.2.3.4")
	assert.Error(t, err)

	_, err = NewRefreshToken("user-id", "tok", time.Now().UTC().Add(-time.Second), "1.2.3.4")
	assert.Error(t, err)

	token, err := NewRefreshToken("user-id", "tok", future, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", token.CreatedByIP)
	assert.Nil(t, token.RevokedAt)
	assert.Nil(t, token.ReplacedByToken)
}

func TestRefreshToken_ExpiryBoundary(t *testing.T) {
	expiresAt := time.Now().UTC().Add(time.Hour)
	token, err := NewRefreshToken("user-id", "tok", expiresAt, "")
	require.NoError(t, err)

	// expiresAt exactly equal to now counts as expired
	assert.True(t, token.IsExpired(expiresAt))
	assert.False(t, token.IsExpired(expiresAt.Add(-time.Nanosecond)))
	assert.True(t, token.IsExpired(expiresAt.Add(time.Nanosecond)))
}

func TestRefreshToken_StateTransitions(t *testing.T) {
	now := time.Now().UTC()
	token, err := NewRefreshToken("user-id", "tok", now.Add(time.Hour), "")
	require.NoError(t, err)

	assert.True(t, token.IsActive(now))
	assert.False(t, token.IsRevoked())

	revokedAt := now
	token.RevokedAt = &revokedAt
	assert.True(t, token.IsRevoked())
	assert.False(t, token.IsActive(now))

	// expired but unrevoked token is inactive too
	fresh, err := NewRefreshToken("user-id", "tok2", now.Add(time.Minute), "")
	require.NoError(t, err)
	assert.False(t, fresh.IsActive(now.Add(2*time.Minute)))
	assert.False(t, fresh.IsRevoked())
}
