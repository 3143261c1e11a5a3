package handler

import (
	"strings"

	dErrors "kycdesk/pkg/domain-errors"
)

// HTTP request DTOs. Converted to service calls after preparation.

type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequest) Normalize() {
	if r == nil {
		return
	}
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *RejectRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	return nil
}

type OpenDraftRequest struct {
	UserID string `json:"user_id"`
}

func (r *OpenDraftRequest) Normalize() {
	if r == nil {
		return
	}
	r.UserID = strings.TrimSpace(r.UserID)
}

func (r *OpenDraftRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	return nil
}

// UpdateDraftRequest carries the raw draft text. It is intentionally not
// trimmed: the draft mirrors the dialog's text field and trimming happens at
// confirmation.
type UpdateDraftRequest struct {
	Reason string `json:"reason"`
}
