// Package store holds the session-scoped submission list for one review
// screen. The list has a single owner (its screen), is replaced wholesale on
// fetch, and single-record updates copy then swap so readers never observe a
// partial mutation.
package store

import (
	"sync"

	"kycdesk/internal/review/models"
	"kycdesk/internal/sentinel"
)

// ErrNotFound is returned when a record is not in the loaded set.
var ErrNotFound = sentinel.ErrNotFound

// SessionList is the in-memory copy of the records fetched for one screen.
type SessionList struct {
	mu      sync.RWMutex
	records []models.Submission
}

// NewSessionList creates an empty session list.
func NewSessionList() *SessionList {
	return &SessionList{}
}

// ReplaceAll discards the current copy and installs the freshly fetched set.
func (l *SessionList) ReplaceAll(records []models.Submission) {
	copied := make([]models.Submission, len(records))
	copy(copied, records)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = copied
}

// All returns a copy of the loaded records in load order.
func (l *SessionList) All() []models.Submission {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Submission, len(l.records))
	copy(out, l.records)
	return out
}

// Find returns the record with the given user ID.
func (l *SessionList) Find(userID string) (models.Submission, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.records {
		if r.UserID == userID {
			return r, nil
		}
	}
	return models.Submission{}, ErrNotFound
}

// Replace swaps in an updated record by user ID via copy-then-replace: the
// whole slice is rebuilt so concurrent readers of a previous copy are never
// affected.
func (l *SessionList) Replace(updated models.Submission) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]models.Submission, len(l.records))
	copy(next, l.records)
	for i, r := range next {
		if r.UserID == updated.UserID {
			next[i] = updated
			l.records = next
			return nil
		}
	}
	return ErrNotFound
}

// Len returns the number of loaded records.
func (l *SessionList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
