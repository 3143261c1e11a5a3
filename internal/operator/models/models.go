// Package models defines the operator session domain objects.
package models

import "time"

// Session is one authenticated console session. GatewayToken is the bearer
// token forwarded on gateway calls made on this session's behalf.
type Session struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	GatewayToken string    `json:"gateway_token,omitempty"`
	Device       string    `json:"device,omitempty"`
	ClientIP     string    `json:"client_ip,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
