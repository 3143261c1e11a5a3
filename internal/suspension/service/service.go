// Package service implements the suspension screen: list the suspended set,
// add numbers to it, and release them.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"kycdesk/internal/sentinel"
	suspensionmetrics "kycdesk/internal/suspension/metrics"
	"kycdesk/internal/suspension/models"
	dErrors "kycdesk/pkg/domain-errors"
)

// Backend owns the authoritative suspended set. The gateway client implements
// it in networked deployments; the in-memory store implements it for demo
// environments.
type Backend interface {
	ListSuspended(ctx context.Context) ([]models.SuspendedUser, error)
	Suspend(ctx context.Context, mobileNumber, reason string) error
	Unsuspend(ctx context.Context, mobileNumber string) error
}

// Service is the session-scoped suspension screen. It caches the suspended
// set and re-fetches it wholesale after every successful mutation rather than
// patching the cached copy.
type Service struct {
	backend Backend

	mu     sync.Mutex
	loaded bool
	users  []models.SuspendedUser

	// opMu serializes mutations so the screen never has two suspension calls
	// in flight against the backend.
	opMu sync.Mutex

	logger  *slog.Logger
	metrics *suspensionmetrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *suspensionmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reload re-fetches the suspended set from the backend.
func (s *Service) Reload(ctx context.Context) error {
	users, err := s.backend.ListSuspended(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "suspended list load failed", "error", err)
		return wrapBackendErr(err, "failed to load suspended users")
	}

	s.mu.Lock()
	s.users = users
	s.loaded = true
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "suspended list loaded", "records", len(users))
	return nil
}

// ensureLoaded fetches the set on first access. Unlike the review screens a
// failed load is not terminal; the next access retries.
func (s *Service) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.Reload(ctx)
}

// Users returns the cached suspended set filtered by mobile-number substring.
// The filter mirrors the review screens: trimmed search, case-sensitive
// containment, order preserved.
func (s *Service) Users(ctx context.Context, search string) ([]models.SuspendedUser, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	users := make([]models.SuspendedUser, len(s.users))
	copy(users, s.users)
	s.mu.Unlock()

	return models.FilterByMobile(users, search), nil
}

// Suspend adds a mobile number to the suspended set. Both fields are required
// after trimming; validation failures make no backend call. On success the
// set is re-fetched so the screen reflects the backend's view, including any
// identity fields it synthesized.
func (s *Service) Suspend(ctx context.Context, mobileNumber, reason string) error {
	mobileNumber = strings.TrimSpace(mobileNumber)
	reason = strings.TrimSpace(reason)
	if mobileNumber == "" || reason == "" {
		return dErrors.New(dErrors.CodeValidation, "mobile number and reason are required")
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.backend.Suspend(ctx, mobileNumber, reason); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementFailure("suspend")
		}
		s.logger.ErrorContext(ctx, "suspend failed", "error", err, "mobile_number", mobileNumber)
		return wrapBackendErr(err, "failed to suspend user")
	}

	if s.metrics != nil {
		s.metrics.IncrementSuspended()
	}
	s.logger.InfoContext(ctx, "user suspended", "mobile_number", mobileNumber)
	return s.Reload(ctx)
}

// Unsuspend removes a mobile number from the suspended set. The release
// dialog collects a reason from the operator but it is deliberately not
// forwarded; the backend contract only takes the number.
func (s *Service) Unsuspend(ctx context.Context, mobileNumber string) error {
	mobileNumber = strings.TrimSpace(mobileNumber)
	if mobileNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "mobile number is required")
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.backend.Unsuspend(ctx, mobileNumber); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementFailure("unsuspend")
		}
		s.logger.ErrorContext(ctx, "unsuspend failed", "error", err, "mobile_number", mobileNumber)
		return wrapBackendErr(err, "failed to unsuspend user")
	}

	if s.metrics != nil {
		s.metrics.IncrementUnsuspended()
	}
	s.logger.InfoContext(ctx, "user unsuspended", "mobile_number", mobileNumber)
	return s.Reload(ctx)
}

// wrapBackendErr translates backend failures into domain errors exactly once,
// preserving any upstream message verbatim.
func wrapBackendErr(err error, fallback string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "User not found in suspended list.")
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, fallback)
}
