package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kycdesk/internal/operator/models"
	dErrors "kycdesk/pkg/domain-errors"
	"kycdesk/pkg/platform/httputil"
	request "kycdesk/pkg/platform/middleware/request"
	"kycdesk/pkg/requestcontext"
)

// Service defines the operator auth operations.
type Service interface {
	Login(ctx context.Context, username, password string) (string, models.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated auth routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// RegisterProtected mounts the routes that require a valid session.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/auth/logout", h.HandleLogout)
	r.Get("/auth/session", h.HandleSession)
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Operator  string    `json:"operator"`
	Device    string    `json:"device,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	Operator  string `json:"operator"`
	SessionID string `json:"session_id"`
}

// HandleLogin verifies credentials and returns an access token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	token, session, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &LoginResponse{
		Token:     token,
		Operator:  session.Username,
		Device:    session.Device,
		ExpiresAt: session.ExpiresAt,
	})
}

// HandleLogout deletes the caller's session.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	sessionID := requestcontext.SessionID(ctx)
	if sessionID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "no active session"))
		return
	}

	if err := h.service.Logout(ctx, sessionID); err != nil {
		h.logger.ErrorContext(ctx, "logout failed", "error", err, "request_id", requestID, "session_id", sessionID)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSession returns the authenticated operator, for the UI to restore
// its header after a page reload.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httputil.WriteJSON(w, http.StatusOK, &SessionResponse{
		Operator:  requestcontext.Operator(ctx),
		SessionID: requestcontext.SessionID(ctx),
	})
}
