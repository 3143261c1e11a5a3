package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"kycdesk/internal/review/legacy"
	"kycdesk/internal/review/service"
)

type HandlerSuite struct {
	suite.Suite
	router http.Handler
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(legacy.NewRoster(legacy.SeedRecords()), service.WithLogger(logger))
	h := New(svc, logger)

	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decodeList(rec *httptest.ResponseRecorder) SubmissionListResponse {
	var resp SubmissionListResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *HandlerSuite) TestListSubmissions() {
	rec := s.do(http.MethodGet, "/screens/aadhar/submissions", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	resp := s.decodeList(rec)
	assert.Equal(s.T(), 3, resp.Total)
	assert.Equal(s.T(), "pending", resp.Data[0].DisplayStatus)
	assert.Equal(s.T(), "Pending", resp.Data[0].Status)
}

func (s *HandlerSuite) TestListSubmissionsMobileFilter() {
	rec := s.do(http.MethodGet, "/screens/aadhar/submissions?mobile=987", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	resp := s.decodeList(rec)
	require.Equal(s.T(), 1, resp.Total)
	assert.Equal(s.T(), "U001", resp.Data[0].UserID)
}

func (s *HandlerSuite) TestReraScreenFiltersRecords() {
	rec := s.do(http.MethodGet, "/screens/rera/submissions", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	resp := s.decodeList(rec)
	// U002 has no RERA registration.
	assert.Equal(s.T(), 2, resp.Total)
	for _, r := range resp.Data {
		assert.NotEmpty(s.T(), r.ReraID)
	}
}

func (s *HandlerSuite) TestUnknownDocumentType() {
	rec := s.do(http.MethodGet, "/screens/passport/submissions", nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestApprove() {
	rec := s.do(http.MethodPost, "/screens/aadhar/submissions/U001/approve", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var resp SubmissionResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), "verified", resp.DisplayStatus)
	assert.Empty(s.T(), resp.Reason)
}

func (s *HandlerSuite) TestApproveUnknownUser() {
	rec := s.do(http.MethodPost, "/screens/aadhar/submissions/U999/approve", nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestReject() {
	rec := s.do(http.MethodPost, "/screens/aadhar/submissions/U002/reject",
		map[string]string{"reason": "  blurry photo  "})
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var resp SubmissionResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), "not_verified", resp.DisplayStatus)
	assert.Equal(s.T(), "blurry photo", resp.Reason)
}

func (s *HandlerSuite) TestRejectEmptyReason() {
	rec := s.do(http.MethodPost, "/screens/aadhar/submissions/U002/reject",
		map[string]string{"reason": "   "})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestRejectInvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/screens/aadhar/submissions/U002/reject",
		bytes.NewReader([]byte("not valid json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestDraftLifecycle() {
	rec := s.do(http.MethodPost, "/screens/aadhar/reject-draft", map[string]string{"user_id": "U001"})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPut, "/screens/aadhar/reject-draft", map[string]string{"reason": "blurry photo"})
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var draft struct {
		Open       bool   `json:"open"`
		Reason     string `json:"reason"`
		CanConfirm bool   `json:"can_confirm"`
	}
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.True(s.T(), draft.CanConfirm)

	rec = s.do(http.MethodPost, "/screens/aadhar/reject-draft/confirm", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var resp SubmissionResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), "not_verified", resp.DisplayStatus)
	assert.Equal(s.T(), "blurry photo", resp.Reason)

	rec = s.do(http.MethodGet, "/screens/aadhar/reject-draft", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.False(s.T(), draft.Open)
}

func (s *HandlerSuite) TestConfirmDraftWithEmptyReason() {
	rec := s.do(http.MethodPost, "/screens/aadhar/reject-draft", map[string]string{"user_id": "U001"})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/screens/aadhar/reject-draft/confirm", nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	// The record is untouched.
	list := s.decodeList(s.do(http.MethodGet, "/screens/aadhar/submissions?mobile=9876543210", nil))
	require.Equal(s.T(), 1, list.Total)
	assert.Equal(s.T(), "pending", list.Data[0].DisplayStatus)
}

func (s *HandlerSuite) TestCancelDraft() {
	rec := s.do(http.MethodPost, "/screens/aadhar/reject-draft", map[string]string{"user_id": "U001"})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	rec = s.do(http.MethodDelete, "/screens/aadhar/reject-draft", nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPost, "/screens/aadhar/reject-draft/confirm", nil)
	assert.Equal(s.T(), http.StatusConflict, rec.Code)
}

func (s *HandlerSuite) TestScreensAreIndependent() {
	rec := s.do(http.MethodPost, "/screens/aadhar/reject-draft", map[string]string{"user_id": "U001"})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	// The rera screen has no draft open.
	rec = s.do(http.MethodGet, "/screens/rera/reject-draft", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var draft struct {
		Open bool `json:"open"`
	}
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &draft))
	assert.False(s.T(), draft.Open)
}

func (s *HandlerSuite) TestReloadReflectsBackendState() {
	rec := s.do(http.MethodPost, "/screens/aadhar/submissions/U001/approve", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/screens/aadhar/reload", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	// The legacy roster recorded the decision, so it survives the reload.
	list := s.decodeList(s.do(http.MethodGet, "/screens/aadhar/submissions?mobile=9876543210", nil))
	require.Equal(s.T(), 1, list.Total)
	assert.Equal(s.T(), "verified", list.Data[0].DisplayStatus)
}
