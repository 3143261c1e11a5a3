package models

import "strings"

// SuspendedUser is one entry in the suspended set. Membership in the set is
// the suspension state; there is no separate flag. Identity fields beyond the
// mobile number may be unknown when the account does not exist yet.
type SuspendedUser struct {
	MobileNumber string `json:"mobile_number"`
	UserID       string `json:"user_id,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Reason       string `json:"reason"`
}

// MatchesMobile reports whether the entry's mobile number contains the
// trimmed search text. Case-sensitive, order-preserving filter semantics.
func (u SuspendedUser) MatchesMobile(search string) bool {
	return strings.Contains(u.MobileNumber, strings.TrimSpace(search))
}

// FilterByMobile returns the subset of entries matching the search text,
// preserving order.
func FilterByMobile(users []SuspendedUser, search string) []SuspendedUser {
	filtered := make([]SuspendedUser, 0, len(users))
	for _, u := range users {
		if u.MatchesMobile(search) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
