// Package main provides a CLI tool for generating operator tokens for local
// kycdesk development. These tokens use the dev signing key and will NOT work
// against a production deployment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"kycdesk/internal/operator/token"
)

const (
	// Dev signing key - matches config.go when JWT_SIGNING_KEY is not set
	devSigningKey = "dev-secret-key-change-in-production"

	defaultUsername = "operator"
	defaultTokenTTL = 15 * time.Minute
)

type tokenOutput struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	ExpiresIn string `json:"expires_in"`
	Usage     string `json:"usage"`
}

func main() {
	username := flag.String("username", defaultUsername, "Operator username to embed in the token")
	sessionID := flag.String("session-id", "", "Session ID (UUID). Generated if empty.")
	ttl := flag.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	signingKey := flag.String("signing-key", devSigningKey, "HMAC signing key, must match JWT_SIGNING_KEY")
	asJSON := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	sid := *sessionID
	if sid == "" {
		sid = uuid.NewString()
	}

	svc := token.NewService(*signingKey, *ttl)
	signed, expiresAt, err := svc.Generate(*username, sid)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to generate token:", err)
		os.Exit(1)
	}

	// The server only accepts tokens whose session exists in its store, so
	// this is mainly useful with a memory-store server started with the same
	// key, or for inspecting claims.
	if *asJSON {
		out := tokenOutput{
			Token:     signed,
			Username:  *username,
			SessionID: sid,
			ExpiresIn: time.Until(expiresAt).Round(time.Second).String(),
			Usage:     `curl -H "Authorization: Bearer <token>" http://localhost:8080/screens/aadhar/submissions`,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}

	fmt.Println(signed)
}
