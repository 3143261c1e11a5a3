package handler

import (
	"kycdesk/internal/suspension/models"
)

type SuspendedUserResponse struct {
	MobileNumber string `json:"mobile_number"`
	UserID       string `json:"user_id,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Reason       string `json:"reason"`
}

type SuspendedListResponse struct {
	Data  []SuspendedUserResponse `json:"data"`
	Total int                     `json:"total"`
}

func toSuspendedListResponse(users []models.SuspendedUser) SuspendedListResponse {
	data := make([]SuspendedUserResponse, len(users))
	for i, u := range users {
		data[i] = SuspendedUserResponse{
			MobileNumber: u.MobileNumber,
			UserID:       u.UserID,
			FullName:     u.FullName,
			Email:        u.Email,
			Reason:       u.Reason,
		}
	}
	return SuspendedListResponse{Data: data, Total: len(data)}
}
