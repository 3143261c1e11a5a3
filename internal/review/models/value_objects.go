package models

import (
	dErrors "kycdesk/pkg/domain-errors"
)

// Status is the backend naming scheme for a submission's review state.
// It is set only by the decision workflow, never inferred elsewhere.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusSuccess  Status = "Success"
	StatusRejected Status = "Rejected"
)

// ParseStatus validates a backend status string against the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusSuccess, StatusRejected:
		return Status(s), nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "unknown kyc status: "+s)
}

// DisplayStatus is the operator-facing naming scheme for the same state.
type DisplayStatus string

const (
	DisplayPending     DisplayStatus = "pending"
	DisplayVerified    DisplayStatus = "verified"
	DisplayNotVerified DisplayStatus = "not_verified"
)

// Display maps the backend scheme to the display scheme. This is the single
// boundary mapping between the two naming schemes; nothing else compares raw
// status strings.
func (s Status) Display() DisplayStatus {
	switch s {
	case StatusSuccess:
		return DisplayVerified
	case StatusRejected:
		return DisplayNotVerified
	default:
		return DisplayPending
	}
}

// Decision is a terminal status an operator can assign. Pending is not a
// decision, so it is excluded here.
type Decision = Status

// ParseDecision validates an operator decision.
func ParseDecision(s string) (Decision, error) {
	switch Status(s) {
	case StatusSuccess, StatusRejected:
		return Status(s), nil
	}
	return "", dErrors.New(dErrors.CodeBadRequest, "decision must be Success or Rejected")
}

// DocumentType selects which review screen a submission set belongs to.
type DocumentType string

const (
	DocumentAadhar DocumentType = "aadhar"
	DocumentRera   DocumentType = "rera"
)

// ParseDocumentType validates a document type from a route parameter.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocumentAadhar, DocumentRera:
		return DocumentType(s), nil
	}
	return "", dErrors.New(dErrors.CodeNotFound, "unknown document type: "+s)
}
