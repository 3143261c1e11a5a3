package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycdesk/internal/suspension/models"
	dErrors "kycdesk/pkg/domain-errors"
)

// fakeBackend records mutations and serves a configurable suspended set.
type fakeBackend struct {
	mu         sync.Mutex
	users      []models.SuspendedUser
	listErr    error
	suspendErr error
	listCalls  int
	suspends   [][2]string
	unsuspends []string
}

func (f *fakeBackend) ListSuspended(_ context.Context) ([]models.SuspendedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.SuspendedUser, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeBackend) Suspend(_ context.Context, mobileNumber, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.suspendErr != nil {
		return f.suspendErr
	}
	f.suspends = append(f.suspends, [2]string{mobileNumber, reason})
	f.users = append(f.users, models.SuspendedUser{MobileNumber: mobileNumber, Reason: reason})
	return nil
}

func (f *fakeBackend) Unsuspend(_ context.Context, mobileNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsuspends = append(f.unsuspends, mobileNumber)
	for i, u := range f.users {
		if u.MobileNumber == mobileNumber {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return dErrors.New(dErrors.CodeNotFound, "User not found in suspended list.")
}

func seedUsers() []models.SuspendedUser {
	return []models.SuspendedUser{
		{MobileNumber: "9876543210", Reason: "Fraudulent activity"},
		{MobileNumber: "9123456789", Reason: "Chargeback abuse"},
	}
}

func TestUsersLoadsLazilyAndFilters(t *testing.T) {
	backend := &fakeBackend{users: seedUsers()}
	svc := New(backend)
	ctx := context.Background()

	users, err := svc.Users(ctx, "")
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 1, backend.listCalls)

	users, err = svc.Users(ctx, " 987 ")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "9876543210", users[0].MobileNumber)
	assert.Equal(t, 1, backend.listCalls)
}

func TestFailedLoadRetriesOnNextAccess(t *testing.T) {
	backend := &fakeBackend{listErr: dErrors.New(dErrors.CodeUnavailable, "gateway unreachable")}
	svc := New(backend)
	ctx := context.Background()

	_, err := svc.Users(ctx, "")
	require.Error(t, err)

	backend.mu.Lock()
	backend.listErr = nil
	backend.users = seedUsers()
	backend.mu.Unlock()

	users, err := svc.Users(ctx, "")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestSuspendRefreshesList(t *testing.T) {
	backend := &fakeBackend{users: seedUsers()}
	svc := New(backend)
	ctx := context.Background()

	require.NoError(t, svc.Suspend(ctx, " 9999999999 ", " spam "))

	require.Len(t, backend.suspends, 1)
	assert.Equal(t, [2]string{"9999999999", "spam"}, backend.suspends[0])

	users, err := svc.Users(ctx, "")
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestSuspendValidatesInput(t *testing.T) {
	backend := &fakeBackend{users: seedUsers()}
	svc := New(backend)
	ctx := context.Background()

	for _, tc := range [][2]string{
		{"", "spam"},
		{"9999999999", ""},
		{"   ", "   "},
	} {
		err := svc.Suspend(ctx, tc[0], tc[1])
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	}
	assert.Empty(t, backend.suspends)
}

func TestSuspendSurfacesBackendMessage(t *testing.T) {
	backend := &fakeBackend{
		users:      seedUsers(),
		suspendErr: dErrors.New(dErrors.CodeConflict, "This user is already suspended."),
	}
	svc := New(backend)

	err := svc.Suspend(context.Background(), "9876543210", "again")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Equal(t, "This user is already suspended.", dErrors.Message(err, ""))
}

func TestUnsuspendRefreshesList(t *testing.T) {
	backend := &fakeBackend{users: seedUsers()}
	svc := New(backend)
	ctx := context.Background()

	require.NoError(t, svc.Unsuspend(ctx, "9876543210"))
	assert.Equal(t, []string{"9876543210"}, backend.unsuspends)

	users, err := svc.Users(ctx, "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "9123456789", users[0].MobileNumber)
}

func TestUnsuspendValidatesMobile(t *testing.T) {
	backend := &fakeBackend{users: seedUsers()}
	svc := New(backend)

	err := svc.Unsuspend(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Empty(t, backend.unsuspends)
}

func TestUnsuspendUnknownNumber(t *testing.T) {
	backend := &fakeBackend{users: seedUsers()}
	svc := New(backend)

	err := svc.Unsuspend(context.Background(), "0000000000")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
