package models

import "strings"

// Submission is one identity-verification record under operator review.
// Records are owned by the backend gateway; the console holds a transient,
// session-scoped copy.
type Submission struct {
	UserID       string `json:"user_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	ReraID       string `json:"rera_id,omitempty"`

	// Evidence storage keys as returned by the gateway. Opaque.
	SelfieImageKey string `json:"selfie_image_key,omitempty"`
	AadharFrontKey string `json:"aadhar_front_key,omitempty"`
	AadharBackKey  string `json:"aadhar_back_key,omitempty"`

	// Display URLs resolved from the keys at load time. Empty when a key is
	// missing or its resolution failed.
	PictureURL     string `json:"picture_url"`
	AadharFrontURL string `json:"aadhar_front_url"`
	AadharBackURL  string `json:"aadhar_back_url"`

	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// MatchesMobile reports whether the record's mobile number contains the
// trimmed search text. Case-sensitive, no separator normalization; an empty
// search matches everything.
func (s Submission) MatchesMobile(search string) bool {
	return strings.Contains(s.MobileNumber, strings.TrimSpace(search))
}

// FilterByMobile returns the subset of records matching the search text,
// preserving order.
func FilterByMobile(records []Submission, search string) []Submission {
	filtered := make([]Submission, 0, len(records))
	for _, r := range records {
		if r.MatchesMobile(search) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
