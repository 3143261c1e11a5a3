// Package store holds the legacy in-memory suspended set used when no
// gateway is configured. The gateway-backed deployment keeps the set remotely
// and this store is unused.
package store

import (
	"context"
	"fmt"
	"sync"

	"kycdesk/internal/suspension/models"
	dErrors "kycdesk/pkg/domain-errors"
)

// MemoryStore is a mutex-guarded suspended set keyed by mobile number.
// Insertion order is preserved for listing.
type MemoryStore struct {
	mu    sync.RWMutex
	users []models.SuspendedUser
	next  int
}

// NewMemoryStore creates a store seeded with the given users.
func NewMemoryStore(seed ...models.SuspendedUser) *MemoryStore {
	s := &MemoryStore{
		users: make([]models.SuspendedUser, 0, len(seed)),
		next:  100 + len(seed),
	}
	s.users = append(s.users, seed...)
	return s
}

// SeedUsers returns the demo suspended set.
func SeedUsers() []models.SuspendedUser {
	return []models.SuspendedUser{
		{MobileNumber: "9876543210", UserID: "U101", FullName: "Ramesh Kumar", Email: "ramesh.k@example.com", Reason: "Fraudulent activity"},
		{MobileNumber: "9123456789", UserID: "U102", FullName: "Sunita Sharma", Email: "sunita.s@example.com", Reason: "Chargeback abuse"},
	}
}

// ListSuspended returns a copy of the suspended set in insertion order.
func (s *MemoryStore) ListSuspended(ctx context.Context) ([]models.SuspendedUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SuspendedUser, len(s.users))
	copy(out, s.users)
	return out, nil
}

// Suspend adds a mobile number to the set. Suspending a number that is
// already present is rejected. Identity fields are synthesized because the
// legacy set only tracks numbers.
func (s *MemoryStore) Suspend(ctx context.Context, mobileNumber, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.MobileNumber == mobileNumber {
			return dErrors.New(dErrors.CodeConflict, "This user is already suspended.")
		}
	}

	s.next++
	s.users = append(s.users, models.SuspendedUser{
		MobileNumber: mobileNumber,
		UserID:       fmt.Sprintf("U%d", s.next),
		FullName:     "unknown",
		Email:        "unknown@example.com",
		Reason:       reason,
	})
	return nil
}

// Unsuspend removes a mobile number from the set.
func (s *MemoryStore) Unsuspend(ctx context.Context, mobileNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.MobileNumber == mobileNumber {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return dErrors.New(dErrors.CodeNotFound, "User not found in suspended list.")
}
