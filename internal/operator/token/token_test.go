package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParseRoundtrip(t *testing.T) {
	svc := NewService("test-signing-key", 15*time.Minute)

	signed, expiresAt, err := svc.Generate("operator", "session-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestParseRejectsWrongKey(t *testing.T) {
	signer := NewService("key-one", 15*time.Minute)
	verifier := NewService("key-two", 15*time.Minute)

	signed, _, err := signer.Generate("operator", "session-1")
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key", -1*time.Minute)

	signed, _, err := svc.Generate("operator", "session-1")
	require.NoError(t, err)

	_, err = svc.Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := NewService("test-signing-key", 15*time.Minute)
	_, err := svc.Parse("not-a-token")
	assert.Error(t, err)
}
