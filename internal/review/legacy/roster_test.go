package legacy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycdesk/internal/review/models"
	"kycdesk/internal/sentinel"
)

func TestListSubmissionsReturnsSeededSet(t *testing.T) {
	roster := NewRoster(SeedRecords())

	records, err := roster.ListSubmissions(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, models.StatusPending, r.Status)
	}
}

func TestUpdateStatusApproveClearsReason(t *testing.T) {
	roster := NewRoster(SeedRecords())
	ctx := context.Background()

	require.NoError(t, roster.UpdateStatus(ctx, "U001", models.StatusRejected, "blurry photo"))
	require.NoError(t, roster.UpdateStatus(ctx, "U001", models.StatusSuccess, ""))

	records, err := roster.ListSubmissions(ctx)
	require.NoError(t, err)
	for _, r := range records {
		if r.UserID == "U001" {
			assert.Equal(t, models.StatusSuccess, r.Status)
			assert.Empty(t, r.Reason)
		}
	}
}

func TestUpdateStatusRejectStoresTrimmedReason(t *testing.T) {
	roster := NewRoster(SeedRecords())
	ctx := context.Background()

	require.NoError(t, roster.UpdateStatus(ctx, "U002", models.StatusRejected, "  document mismatch  "))

	records, err := roster.ListSubmissions(ctx)
	require.NoError(t, err)
	for _, r := range records {
		if r.UserID == "U002" {
			assert.Equal(t, models.StatusRejected, r.Status)
			assert.Equal(t, "document mismatch", r.Reason)
		}
	}
}

func TestUpdateStatusRejectEmptyReasonGetsPlaceholder(t *testing.T) {
	roster := NewRoster(SeedRecords())
	ctx := context.Background()

	require.NoError(t, roster.UpdateStatus(ctx, "U003", models.StatusRejected, "   "))

	records, err := roster.ListSubmissions(ctx)
	require.NoError(t, err)
	for _, r := range records {
		if r.UserID == "U003" {
			assert.Equal(t, PlaceholderReason, r.Reason)
		}
	}
}

func TestUpdateStatusUnknownUser(t *testing.T) {
	roster := NewRoster(SeedRecords())

	err := roster.UpdateStatus(context.Background(), "U999", models.StatusSuccess, "")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestUpdateStatusInvalidDecision(t *testing.T) {
	roster := NewRoster(SeedRecords())

	err := roster.UpdateStatus(context.Background(), "U001", models.StatusPending, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, sentinel.ErrNotFound)
}
