package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycdesk/internal/operator/models"
	"kycdesk/internal/operator/store"
	"kycdesk/pkg/requestcontext"
)

func TestSessionTokenPreferred(t *testing.T) {
	sessions := store.NewMemoryStore()
	require.NoError(t, sessions.Save(context.Background(), models.Session{
		ID:           "s1",
		Username:     "operator",
		GatewayToken: "session-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	}))

	src := NewSessionTokenSource(sessions, "fallback-token")
	ctx := requestcontext.WithSessionID(context.Background(), "s1")
	assert.Equal(t, "session-token", src.Token(ctx))
}

func TestFallbackWithoutSession(t *testing.T) {
	src := NewSessionTokenSource(store.NewMemoryStore(), "fallback-token")

	// No session in the context at all.
	assert.Equal(t, "fallback-token", src.Token(context.Background()))

	// Session ID present but unknown to the store.
	ctx := requestcontext.WithSessionID(context.Background(), "missing")
	assert.Equal(t, "fallback-token", src.Token(ctx))
}

func TestFallbackWhenSessionHasNoToken(t *testing.T) {
	sessions := store.NewMemoryStore()
	require.NoError(t, sessions.Save(context.Background(), models.Session{
		ID:        "s1",
		Username:  "operator",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	src := NewSessionTokenSource(sessions, "fallback-token")
	ctx := requestcontext.WithSessionID(context.Background(), "s1")
	assert.Equal(t, "fallback-token", src.Token(ctx))
}

func TestStaticTokenSource(t *testing.T) {
	assert.Equal(t, "static", StaticTokenSource("static").Token(context.Background()))
}
