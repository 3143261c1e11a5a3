// Package service implements the review screens: load the submission set from
// the backend, filter it, and commit approve/reject decisions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"kycdesk/internal/media"
	reviewmetrics "kycdesk/internal/review/metrics"
	"kycdesk/internal/review/models"
	"kycdesk/internal/review/store"
	"kycdesk/internal/sentinel"
	dErrors "kycdesk/pkg/domain-errors"
)

// Backend commits decisions and owns the authoritative submission set.
// The gateway client implements it in networked deployments; the legacy
// in-memory roster implements it for demo environments.
type Backend interface {
	ListSubmissions(ctx context.Context) ([]models.Submission, error)
	UpdateStatus(ctx context.Context, userID string, status models.Status, reason string) error
}

// LoadState tracks the screen's fetch lifecycle. A failed load is terminal
// until the operator reloads the screen.
type LoadState string

const (
	LoadStateNotLoaded LoadState = "not_loaded"
	LoadStateReady     LoadState = "ready"
	LoadStateFailed    LoadState = "failed"
)

// Screen owns the session-scoped state of one review screen: the loaded
// record list and the single rejection draft.
type Screen struct {
	document models.DocumentType
	backend  Backend
	resolver media.Resolver
	list     *store.SessionList

	mu      sync.Mutex
	state   LoadState
	loadErr error
	draft   draftState

	// opMu serializes decision calls so a screen never has two mutations in
	// flight against the backend.
	opMu sync.Mutex

	logger  *slog.Logger
	metrics *reviewmetrics.Metrics
}

// Service groups the review screens by document type.
type Service struct {
	screens map[models.DocumentType]*Screen
}

// Option configures the Service.
type Option func(*settings)

type settings struct {
	logger   *slog.Logger
	metrics  *reviewmetrics.Metrics
	resolver media.Resolver
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func WithMetrics(m *reviewmetrics.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithResolver enables evidence image resolution on the aadhar screen.
func WithResolver(r media.Resolver) Option {
	return func(s *settings) {
		s.resolver = r
	}
}

// New creates the review service with one screen per document type.
func New(backend Backend, opts ...Option) *Service {
	cfg := &settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	screens := make(map[models.DocumentType]*Screen)
	for _, doc := range []models.DocumentType{models.DocumentAadhar, models.DocumentRera} {
		s := &Screen{
			document: doc,
			backend:  backend,
			list:     store.NewSessionList(),
			state:    LoadStateNotLoaded,
			logger:   cfg.logger,
			metrics:  cfg.metrics,
		}
		// Only the aadhar screen displays evidence images.
		if doc == models.DocumentAadhar {
			s.resolver = cfg.resolver
		}
		screens[doc] = s
	}
	return &Service{screens: screens}
}

// Screen returns the screen for the given document type.
func (s *Service) Screen(doc models.DocumentType) (*Screen, error) {
	screen, ok := s.screens[doc]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown document type")
	}
	return screen, nil
}

// Document returns the screen's document type.
func (s *Screen) Document() models.DocumentType {
	return s.document
}

// Records returns the number of loaded records.
func (s *Screen) Records() int {
	return s.list.Len()
}

// State returns the screen's load state and the terminal load error, if any.
func (s *Screen) State() (LoadState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.loadErr
}

// EnsureLoaded fetches the record set on first access. A previously failed
// load stays failed; the operator must reload the screen explicitly.
func (s *Screen) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	state := s.state
	loadErr := s.loadErr
	s.mu.Unlock()

	switch state {
	case LoadStateReady:
		return nil
	case LoadStateFailed:
		return dErrors.Wrap(loadErr, dErrors.CodeUnavailable, dErrors.Message(loadErr, "screen failed to load, reload required"))
	default:
		return s.Reload(ctx)
	}
}

// Reload re-fetches the record set, replacing the session copy wholesale.
func (s *Screen) Reload(ctx context.Context) error {
	start := time.Now()

	records, err := s.backend.ListSubmissions(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = LoadStateFailed
		s.loadErr = err
		s.mu.Unlock()

		if s.metrics != nil {
			s.metrics.IncrementLoadFailure(string(s.document))
		}
		s.logger.ErrorContext(ctx, "screen load failed",
			"document", s.document,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, dErrors.Message(err, "failed to load submissions"))
	}

	records = s.selectForDocument(records)
	s.resolveEvidence(ctx, records)

	s.list.ReplaceAll(records)
	s.mu.Lock()
	s.state = LoadStateReady
	s.loadErr = nil
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ObserveLoad(start)
	}
	s.logger.InfoContext(ctx, "screen loaded",
		"document", s.document,
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// selectForDocument narrows the gateway's single submission feed to the
// records this screen reviews. The rera screen only shows submissions that
// carry a RERA registration; the aadhar screen shows the full set.
func (s *Screen) selectForDocument(records []models.Submission) []models.Submission {
	if s.document != models.DocumentRera {
		return records
	}
	selected := make([]models.Submission, 0, len(records))
	for _, r := range records {
		if r.ReraID != "" {
			selected = append(selected, r)
		}
	}
	return selected
}

// resolveEvidence resolves each record's three evidence keys to display URLs.
// Records are processed concurrently and each record fans out its three
// lookups; a failed lookup degrades that image to "" without affecting the
// record's siblings or other records.
func (s *Screen) resolveEvidence(ctx context.Context, records []models.Submission) {
	if s.resolver == nil {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range records {
		i := i
		g.Go(func() error {
			urls := media.ResolveAll(ctx, s.resolver,
				records[i].SelfieImageKey,
				records[i].AadharFrontKey,
				records[i].AadharBackKey,
			)
			records[i].PictureURL = urls[0]
			records[i].AadharFrontURL = urls[1]
			records[i].AadharBackURL = urls[2]
			return nil
		})
	}
	_ = g.Wait()
}

// Submissions returns the loaded records filtered by mobile-number substring.
// The filter is pure: trimmed search text, case-sensitive containment, order
// preserved, empty search returns the full set.
func (s *Screen) Submissions(ctx context.Context, search string) ([]models.Submission, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	return models.FilterByMobile(s.list.All(), search), nil
}

// Approve transitions a record to Success and clears any stored rejection
// reason. The transition is re-assertable from any prior status. Exactly one
// backend call is made; on failure local state is left unchanged.
func (s *Screen) Approve(ctx context.Context, userID string) (models.Submission, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return models.Submission{}, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	record, err := s.list.Find(userID)
	if err != nil {
		return models.Submission{}, dErrors.New(dErrors.CodeNotFound, "submission not found")
	}

	if err := s.backend.UpdateStatus(ctx, userID, models.StatusSuccess, ""); err != nil {
		s.logger.ErrorContext(ctx, "approve failed",
			"document", s.document,
			"user_id", userID,
			"error", err,
		)
		return models.Submission{}, wrapBackendErr(err, "failed to approve submission")
	}

	record.Status = models.StatusSuccess
	record.Reason = ""
	if err := s.list.Replace(record); err != nil {
		// The record vanished between Find and Replace; reconcile on next load.
		return models.Submission{}, dErrors.New(dErrors.CodeNotFound, "submission not found")
	}

	if s.metrics != nil {
		s.metrics.IncrementApproved(string(s.document))
	}
	s.logger.InfoContext(ctx, "submission approved",
		"document", s.document,
		"user_id", userID,
	)
	return record, nil
}

// Reject transitions a record to Rejected with the trimmed reason. An empty
// or whitespace-only reason is blocked before any backend call. The trimmed
// reason is sent as-is; placeholder substitution is a legacy-backend concern.
func (s *Screen) Reject(ctx context.Context, userID, reason string) (models.Submission, error) {
	if err := s.EnsureLoaded(ctx); err != nil {
		return models.Submission{}, err
	}

	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return models.Submission{}, dErrors.New(dErrors.CodeValidation, "rejection reason is required")
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	record, err := s.list.Find(userID)
	if err != nil {
		return models.Submission{}, dErrors.New(dErrors.CodeNotFound, "submission not found")
	}

	if err := s.backend.UpdateStatus(ctx, userID, models.StatusRejected, trimmed); err != nil {
		s.logger.ErrorContext(ctx, "reject failed",
			"document", s.document,
			"user_id", userID,
			"error", err,
		)
		return models.Submission{}, wrapBackendErr(err, "failed to reject submission")
	}

	record.Status = models.StatusRejected
	record.Reason = trimmed
	if err := s.list.Replace(record); err != nil {
		return models.Submission{}, dErrors.New(dErrors.CodeNotFound, "submission not found")
	}

	if s.metrics != nil {
		s.metrics.IncrementRejected(string(s.document))
	}
	s.logger.InfoContext(ctx, "submission rejected",
		"document", s.document,
		"user_id", userID,
	)
	return record, nil
}

// wrapBackendErr translates backend failures into domain errors exactly once,
// preserving any upstream message verbatim.
func wrapBackendErr(err error, fallback string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "submission not found")
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, fallback)
}
