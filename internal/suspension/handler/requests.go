package handler

import (
	"strings"

	dErrors "kycdesk/pkg/domain-errors"
)

type SuspendRequest struct {
	MobileNumber string `json:"mobile_number"`
	Reason       string `json:"reason"`
}

func (r *SuspendRequest) Normalize() {
	if r == nil {
		return
	}
	r.MobileNumber = strings.TrimSpace(r.MobileNumber)
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *SuspendRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.MobileNumber == "" || r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "mobile number and reason are required")
	}
	return nil
}

// UnsuspendRequest carries an optional reason. The release dialog collects
// one for the operator's benefit but it never leaves the console.
type UnsuspendRequest struct {
	MobileNumber string `json:"mobile_number"`
	Reason       string `json:"reason,omitempty"`
}

func (r *UnsuspendRequest) Normalize() {
	if r == nil {
		return
	}
	r.MobileNumber = strings.TrimSpace(r.MobileNumber)
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *UnsuspendRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.MobileNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "mobile number is required")
	}
	return nil
}
