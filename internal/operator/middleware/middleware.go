// Package middleware guards the console's protected routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"kycdesk/internal/operator/models"
	dErrors "kycdesk/pkg/domain-errors"
	"kycdesk/pkg/platform/httputil"
	"kycdesk/pkg/requestcontext"
)

// Authenticator verifies an access token and loads its session.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (models.Session, error)
}

// RequireOperator rejects requests without a valid bearer token. On success
// the session ID and operator username are stored in the request context so
// downstream code can attribute actions and pick up the session's gateway
// token.
func RequireOperator(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			session, err := auth.Authenticate(r.Context(), tokenString)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			ctx := requestcontext.WithSessionID(r.Context(), session.ID)
			ctx = requestcontext.WithOperator(ctx, session.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
