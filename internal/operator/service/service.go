// Package service authenticates console operators and manages their sessions.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"golang.org/x/crypto/bcrypt"

	"kycdesk/internal/operator/models"
	"kycdesk/internal/operator/store"
	"kycdesk/internal/operator/token"
	"kycdesk/internal/sentinel"
	dErrors "kycdesk/pkg/domain-errors"
	"kycdesk/pkg/requestcontext"
)

// Service verifies operator credentials and owns the session lifecycle. The
// console has a single configured operator account; there is no user store.
type Service struct {
	username     string
	passwordHash []byte
	gatewayToken string

	tokens   *token.Service
	sessions store.SessionStore
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New hashes the configured password once at startup so plaintext never sits
// in the struct. gatewayToken is attached to each session and forwarded on
// gateway calls.
func New(username, password, gatewayToken string, tokens *token.Service, sessions store.SessionStore, opts ...Option) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash operator password")
	}

	s := &Service{
		username:     username,
		passwordHash: hash,
		gatewayToken: gatewayToken,
		tokens:       tokens,
		sessions:     sessions,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login verifies credentials and creates a session. Wrong username and wrong
// password return the same error so the response does not leak which field
// was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (string, models.Session, error) {
	if username != s.username || bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		s.logger.WarnContext(ctx, "login rejected",
			"username", username,
			"client_ip", requestcontext.ClientIP(ctx),
		)
		return "", models.Session{}, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}

	sessionID := uuid.NewString()
	signed, expiresAt, err := s.tokens.Generate(username, sessionID)
	if err != nil {
		return "", models.Session{}, err
	}

	session := models.Session{
		ID:           sessionID,
		Username:     username,
		GatewayToken: s.gatewayToken,
		Device:       deviceLabel(requestcontext.UserAgent(ctx)),
		ClientIP:     requestcontext.ClientIP(ctx),
		CreatedAt:    time.Now(),
		ExpiresAt:    expiresAt,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", models.Session{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create session")
	}

	s.logger.InfoContext(ctx, "operator logged in",
		"username", username,
		"session_id", sessionID,
		"device", session.Device,
	)
	return signed, session, nil
}

// Authenticate verifies an access token and loads its session. A valid token
// whose session was logged out or expired is rejected.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (models.Session, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return models.Session{}, err
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrExpired) {
			return models.Session{}, dErrors.New(dErrors.CodeUnauthorized, "session expired or logged out")
		}
		return models.Session{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load session")
	}
	return session, nil
}

// Logout deletes the session. Deleting an absent session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to delete session")
	}
	s.logger.InfoContext(ctx, "operator logged out", "session_id", sessionID)
	return nil
}

// deviceLabel renders a short human-readable device description for the
// session list, like "Chrome 120 on Linux".
func deviceLabel(userAgentString string) string {
	if userAgentString == "" {
		return ""
	}

	ua := useragent.New(userAgentString)
	browser, version := ua.Browser()
	browser = strings.TrimSpace(browser)
	if browser == "" {
		return ""
	}

	if parts := strings.Split(version, "."); len(parts) > 0 && parts[0] != "" {
		browser = fmt.Sprintf("%s %s", browser, parts[0])
	}
	if os := strings.TrimSpace(ua.OS()); os != "" {
		browser = fmt.Sprintf("%s on %s", browser, os)
	}
	return browser
}
