package service

import (
	"context"
	"strings"

	"kycdesk/internal/review/models"
	dErrors "kycdesk/pkg/domain-errors"
)

// draftState is the single in-progress rejection reason for a screen. It
// exists only between open and save/cancel and targets exactly one record.
type draftState struct {
	open   bool
	userID string
	reason string
}

// Draft is a read-only snapshot of the screen's rejection draft.
type Draft struct {
	Open   bool   `json:"open"`
	UserID string `json:"user_id,omitempty"`
	Reason string `json:"reason"`
	// CanConfirm mirrors the confirm control: disabled while the reason is
	// empty or whitespace-only.
	CanConfirm bool `json:"can_confirm"`
}

// OpenDraft starts a rejection for the given record, discarding any previous
// draft text. The record must be present in the loaded set.
func (s *Screen) OpenDraft(ctx context.Context, userID string) (Draft, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return Draft{}, err
	}
	if _, err := s.list.Find(userID); err != nil {
		return Draft{}, dErrors.New(dErrors.CodeNotFound, "submission not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draftState{open: true, userID: userID}
	return s.draftSnapshot(), nil
}

// UpdateDraft replaces the draft reason text.
func (s *Screen) UpdateDraft(reason string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.draft.open {
		return Draft{}, dErrors.New(dErrors.CodeConflict, "no rejection draft is open")
	}
	s.draft.reason = reason
	return s.draftSnapshot(), nil
}

// DraftState returns the current draft snapshot.
func (s *Screen) DraftState() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftSnapshot()
}

// CancelDraft discards the draft without any backend call.
func (s *Screen) CancelDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draftState{}
}

// ConfirmDraft commits the drafted rejection. Confirmation with an empty or
// whitespace-only reason is blocked with no backend call. On success the
// draft closes and its target clears; on failure the draft stays open so the
// operator can retry.
func (s *Screen) ConfirmDraft(ctx context.Context) (models.Submission, error) {
	s.mu.Lock()
	if !s.draft.open {
		s.mu.Unlock()
		return models.Submission{}, dErrors.New(dErrors.CodeConflict, "no rejection draft is open")
	}
	userID := s.draft.userID
	reason := s.draft.reason
	s.mu.Unlock()

	if strings.TrimSpace(reason) == "" {
		return models.Submission{}, dErrors.New(dErrors.CodeValidation, "rejection reason is required")
	}

	record, err := s.Reject(ctx, userID, reason)
	if err != nil {
		// Draft stays open for retry.
		return models.Submission{}, err
	}

	s.mu.Lock()
	s.draft = draftState{}
	s.mu.Unlock()
	return record, nil
}

// draftSnapshot builds a Draft; callers must hold s.mu.
func (s *Screen) draftSnapshot() Draft {
	return Draft{
		Open:       s.draft.open,
		UserID:     s.draft.userID,
		Reason:     s.draft.reason,
		CanConfirm: s.draft.open && strings.TrimSpace(s.draft.reason) != "",
	}
}
