package handler

import (
	"kycdesk/internal/review/models"
	"kycdesk/internal/review/service"
)

// HTTP response DTOs. Status is reported in both naming schemes so the UI
// renders badges without re-deriving them.

type SubmissionResponse struct {
	UserID         string `json:"user_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	MobileNumber   string `json:"mobile_number"`
	ReraID         string `json:"rera_id,omitempty"`
	PictureURL     string `json:"picture_url"`
	AadharFrontURL string `json:"aadhar_front_url"`
	AadharBackURL  string `json:"aadhar_back_url"`
	Status         string `json:"status"`
	DisplayStatus  string `json:"display_status"`
	Reason         string `json:"reason,omitempty"`
}

type SubmissionListResponse struct {
	Data  []SubmissionResponse `json:"data"`
	Total int                  `json:"total"`
}

type ScreenStateResponse struct {
	Document string `json:"document"`
	State    string `json:"state"`
	Records  int    `json:"records"`
}

func toSubmissionResponse(s models.Submission) SubmissionResponse {
	return SubmissionResponse{
		UserID:         s.UserID,
		FullName:       s.FullName,
		Email:          s.Email,
		MobileNumber:   s.MobileNumber,
		ReraID:         s.ReraID,
		PictureURL:     s.PictureURL,
		AadharFrontURL: s.AadharFrontURL,
		AadharBackURL:  s.AadharBackURL,
		Status:         string(s.Status),
		DisplayStatus:  string(s.Status.Display()),
		Reason:         s.Reason,
	}
}

func toSubmissionListResponse(records []models.Submission) SubmissionListResponse {
	data := make([]SubmissionResponse, len(records))
	for i, r := range records {
		data[i] = toSubmissionResponse(r)
	}
	return SubmissionListResponse{Data: data, Total: len(data)}
}

func toScreenStateResponse(doc models.DocumentType, state service.LoadState, records int) ScreenStateResponse {
	return ScreenStateResponse{
		Document: string(doc),
		State:    string(state),
		Records:  records,
	}
}
