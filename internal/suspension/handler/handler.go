package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kycdesk/internal/suspension/models"
	"kycdesk/pkg/platform/httputil"
	request "kycdesk/pkg/platform/middleware/request"
)

// Service defines the suspension screen operations.
type Service interface {
	Users(ctx context.Context, search string) ([]models.SuspendedUser, error)
	Reload(ctx context.Context) error
	Suspend(ctx context.Context, mobileNumber, reason string) error
	Unsuspend(ctx context.Context, mobileNumber string) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/screens/suspension", func(r chi.Router) {
		r.Get("/users", h.HandleListUsers)
		r.Post("/reload", h.HandleReload)
		r.Post("/suspend", h.HandleSuspend)
		r.Post("/unsuspend", h.HandleUnsuspend)
	})
}

// HandleListUsers returns the suspended set, optionally narrowed by the
// mobile query parameter.
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	users, err := h.service.Users(ctx, r.URL.Query().Get("mobile"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list suspended users failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSuspendedListResponse(users))
}

// HandleReload re-fetches the suspended set from the backend.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	if err := h.service.Reload(ctx); err != nil {
		h.logger.ErrorContext(ctx, "suspended list reload failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	users, err := h.service.Users(ctx, "")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSuspendedListResponse(users))
}

// HandleSuspend adds a mobile number to the suspended set and returns the
// refreshed set.
func (h *Handler) HandleSuspend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SuspendRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.Suspend(ctx, req.MobileNumber, req.Reason); err != nil {
		h.logger.ErrorContext(ctx, "suspend failed", "error", err, "request_id", requestID, "mobile_number", req.MobileNumber)
		httputil.WriteError(w, err)
		return
	}

	users, err := h.service.Users(ctx, "")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toSuspendedListResponse(users))
}

// HandleUnsuspend removes a mobile number from the suspended set and returns
// the refreshed set. Any reason in the request stays in the console.
func (h *Handler) HandleUnsuspend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UnsuspendRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.Unsuspend(ctx, req.MobileNumber); err != nil {
		h.logger.ErrorContext(ctx, "unsuspend failed", "error", err, "request_id", requestID, "mobile_number", req.MobileNumber)
		httputil.WriteError(w, err)
		return
	}

	users, err := h.service.Users(ctx, "")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSuspendedListResponse(users))
}
