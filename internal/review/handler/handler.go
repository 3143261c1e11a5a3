package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kycdesk/internal/review/models"
	"kycdesk/internal/review/service"
	dErrors "kycdesk/pkg/domain-errors"
	"kycdesk/pkg/platform/httputil"
	request "kycdesk/pkg/platform/middleware/request"
)

// Handler exposes the review screens over HTTP. Each screen keeps its loaded
// record set and rejection draft server-side; the handler only translates
// between HTTP and screen operations.
type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/screens/{document}", func(r chi.Router) {
		r.Get("/submissions", h.HandleListSubmissions)
		r.Get("/state", h.HandleScreenState)
		r.Post("/reload", h.HandleReload)
		r.Post("/submissions/{userID}/approve", h.HandleApprove)
		r.Post("/submissions/{userID}/reject", h.HandleReject)
		r.Get("/reject-draft", h.HandleGetDraft)
		r.Post("/reject-draft", h.HandleOpenDraft)
		r.Put("/reject-draft", h.HandleUpdateDraft)
		r.Post("/reject-draft/confirm", h.HandleConfirmDraft)
		r.Delete("/reject-draft", h.HandleCancelDraft)
	})
}

// screen resolves the {document} URL parameter to a review screen.
func (h *Handler) screen(w http.ResponseWriter, r *http.Request) (*service.Screen, bool) {
	doc, err := models.ParseDocumentType(chi.URLParam(r, "document"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown document type"))
		return nil, false
	}
	screen, err := h.service.Screen(doc)
	if err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	return screen, true
}

// HandleListSubmissions returns the screen's records, optionally narrowed by
// the mobile query parameter.
func (h *Handler) HandleListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	records, err := screen.Submissions(ctx, r.URL.Query().Get("mobile"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list submissions failed", "error", err, "request_id", requestID, "document", screen.Document())
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSubmissionListResponse(records))
}

// HandleScreenState reports the screen's load lifecycle without triggering a
// fetch.
func (h *Handler) HandleScreenState(w http.ResponseWriter, r *http.Request) {
	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	state, _ := screen.State()
	httputil.WriteJSON(w, http.StatusOK, toScreenStateResponse(screen.Document(), state, screen.Records()))
}

// HandleReload re-fetches the screen's record set from the backend.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	if err := screen.Reload(ctx); err != nil {
		h.logger.ErrorContext(ctx, "screen reload failed", "error", err, "request_id", requestID, "document", screen.Document())
		httputil.WriteError(w, err)
		return
	}

	state, _ := screen.State()
	httputil.WriteJSON(w, http.StatusOK, toScreenStateResponse(screen.Document(), state, screen.Records()))
}

// HandleApprove marks a submission verified and clears its rejection reason.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "userID")
	record, err := screen.Approve(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "approve failed", "error", err, "request_id", requestID, "user_id", userID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSubmissionResponse(record))
}

// HandleReject marks a submission rejected with the supplied reason. This is
// the direct form; the draft endpoints model the confirmation dialog.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[RejectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	userID := chi.URLParam(r, "userID")
	record, err := screen.Reject(ctx, userID, req.Reason)
	if err != nil {
		h.logger.ErrorContext(ctx, "reject failed", "error", err, "request_id", requestID, "user_id", userID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSubmissionResponse(record))
}

// HandleOpenDraft starts a rejection draft for a record.
func (h *Handler) HandleOpenDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[OpenDraftRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	draft, err := screen.OpenDraft(ctx, req.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "open draft failed", "error", err, "request_id", requestID, "user_id", req.UserID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, draft)
}

// HandleUpdateDraft replaces the draft reason text.
func (h *Handler) HandleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateDraftRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	draft, err := screen.UpdateDraft(req.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, draft)
}

// HandleGetDraft returns the current draft snapshot.
func (h *Handler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	httputil.WriteJSON(w, http.StatusOK, screen.DraftState())
}

// HandleConfirmDraft commits the drafted rejection.
func (h *Handler) HandleConfirmDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	record, err := screen.ConfirmDraft(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "confirm draft failed", "error", err, "request_id", requestID, "document", screen.Document())
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSubmissionResponse(record))
}

// HandleCancelDraft discards the draft without a backend call.
func (h *Handler) HandleCancelDraft(w http.ResponseWriter, r *http.Request) {
	screen, ok := h.screen(w, r)
	if !ok {
		return
	}

	screen.CancelDraft()
	w.WriteHeader(http.StatusNoContent)
}
