// Package legacy is the non-networked review backend: a seeded in-memory
// roster that applies decisions locally. It predates the gateway integration
// and is kept for demo environments running without an upstream.
package legacy

import (
	"context"
	"strings"
	"sync"

	"kycdesk/internal/review/models"
	"kycdesk/internal/sentinel"
	dErrors "kycdesk/pkg/domain-errors"
)

// PlaceholderReason is substituted when a rejection arrives with an empty or
// whitespace-only reason. The networked backend sends the reason as-is
// instead and leaves this to the gateway.
const PlaceholderReason = "No reason provided"

// Roster is an in-memory submission backend.
type Roster struct {
	mu      sync.RWMutex
	records []models.Submission
}

// NewRoster creates a roster seeded with the given records.
func NewRoster(seed []models.Submission) *Roster {
	records := make([]models.Submission, len(seed))
	copy(records, seed)
	return &Roster{records: records}
}

// SeedRecords returns the demo submission set used when no gateway is
// configured.
func SeedRecords() []models.Submission {
	return []models.Submission{
		{
			UserID:       "U001",
			FullName:     "Ramesh Kumar",
			Email:        "ramesh.k@example.com",
			MobileNumber: "9876543210",
			ReraID:       "RERA123",
			Status:       models.StatusPending,
		},
		{
			UserID:       "U002",
			FullName:     "Sunita Sharma",
			Email:        "sunita.s@example.com",
			MobileNumber: "9123456789",
			Status:       models.StatusPending,
		},
		{
			UserID:       "U003",
			FullName:     "Amit Verma",
			Email:        "amit.verma@example.com",
			MobileNumber: "9988776655",
			ReraID:       "RERA789",
			Status:       models.StatusPending,
		},
	}
}

// ListSubmissions returns a copy of the current roster.
func (r *Roster) ListSubmissions(_ context.Context) ([]models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Submission, len(r.records))
	copy(out, r.records)
	return out, nil
}

// UpdateStatus applies a decision to one record. Approval clears any stored
// reason; rejection stores the trimmed reason, falling back to
// PlaceholderReason when empty. Decisions are re-assertable regardless of the
// record's current status.
func (r *Roster) UpdateStatus(_ context.Context, userID string, status models.Status, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		switch status {
		case models.StatusSuccess:
			rec.Status = models.StatusSuccess
			rec.Reason = ""
		case models.StatusRejected:
			rec.Status = models.StatusRejected
			trimmed := strings.TrimSpace(reason)
			if trimmed == "" {
				trimmed = PlaceholderReason
			}
			rec.Reason = trimmed
		default:
			return dErrors.New(dErrors.CodeBadRequest, "decision must be Success or Rejected")
		}
		r.records[i] = rec
		return nil
	}
	return sentinel.ErrNotFound
}
