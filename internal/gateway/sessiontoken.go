package gateway

import (
	"context"

	"kycdesk/internal/operator/store"
	"kycdesk/pkg/requestcontext"
)

// SessionTokenSource resolves the bearer token from the caller's operator
// session, falling back to a statically configured token when the request has
// no session or the lookup fails. Calls then proceed unauthenticated only if
// no fallback is configured either.
type SessionTokenSource struct {
	sessions store.SessionStore
	fallback string
}

func NewSessionTokenSource(sessions store.SessionStore, fallback string) *SessionTokenSource {
	return &SessionTokenSource{sessions: sessions, fallback: fallback}
}

func (s *SessionTokenSource) Token(ctx context.Context) string {
	sessionID := requestcontext.SessionID(ctx)
	if sessionID == "" || s.sessions == nil {
		return s.fallback
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return s.fallback
	}
	if session.GatewayToken == "" {
		return s.fallback
	}
	return session.GatewayToken
}
