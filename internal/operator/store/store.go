// Package store persists operator sessions. The redis store is used when a
// redis address is configured; the memory store backs single-instance and
// test deployments.
package store

import (
	"context"

	"kycdesk/internal/operator/models"
)

// SessionStore persists operator sessions by ID.
type SessionStore interface {
	Save(ctx context.Context, session models.Session) error
	Get(ctx context.Context, sessionID string) (models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
