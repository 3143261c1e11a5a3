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

	"kycdesk/internal/suspension/service"
	"kycdesk/internal/suspension/store"
)

type HandlerSuite struct {
	suite.Suite
	router http.Handler
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(store.NewMemoryStore(store.SeedUsers()...), service.WithLogger(logger))
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

func (s *HandlerSuite) decodeList(rec *httptest.ResponseRecorder) SuspendedListResponse {
	var resp SuspendedListResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *HandlerSuite) TestListUsers() {
	rec := s.do(http.MethodGet, "/screens/suspension/users", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	resp := s.decodeList(rec)
	assert.Equal(s.T(), 2, resp.Total)
}

func (s *HandlerSuite) TestListUsersMobileFilter() {
	rec := s.do(http.MethodGet, "/screens/suspension/users?mobile=912", nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	resp := s.decodeList(rec)
	require.Equal(s.T(), 1, resp.Total)
	assert.Equal(s.T(), "9123456789", resp.Data[0].MobileNumber)
}

func (s *HandlerSuite) TestSuspendReturnsRefreshedSet() {
	rec := s.do(http.MethodPost, "/screens/suspension/suspend",
		map[string]string{"mobile_number": " 9999999999 ", "reason": " spam "})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	resp := s.decodeList(rec)
	require.Equal(s.T(), 3, resp.Total)
	assert.Equal(s.T(), "9999999999", resp.Data[2].MobileNumber)
	assert.Equal(s.T(), "spam", resp.Data[2].Reason)
}

func (s *HandlerSuite) TestSuspendMissingFields() {
	rec := s.do(http.MethodPost, "/screens/suspension/suspend",
		map[string]string{"mobile_number": "9999999999"})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/screens/suspension/suspend",
		map[string]string{"reason": "spam"})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestSuspendDuplicate() {
	rec := s.do(http.MethodPost, "/screens/suspension/suspend",
		map[string]string{"mobile_number": "9876543210", "reason": "again"})
	require.Equal(s.T(), http.StatusConflict, rec.Code)

	var envelope map[string]string
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(s.T(), "This user is already suspended.", envelope["message"])
}

func (s *HandlerSuite) TestUnsuspendReturnsRefreshedSet() {
	rec := s.do(http.MethodPost, "/screens/suspension/unsuspend",
		map[string]string{"mobile_number": "9876543210", "reason": "appeal accepted"})
	require.Equal(s.T(), http.StatusOK, rec.Code)

	resp := s.decodeList(rec)
	require.Equal(s.T(), 1, resp.Total)
	assert.Equal(s.T(), "9123456789", resp.Data[0].MobileNumber)
}

func (s *HandlerSuite) TestUnsuspendUnknownNumber() {
	rec := s.do(http.MethodPost, "/screens/suspension/unsuspend",
		map[string]string{"mobile_number": "0000000000"})
	require.Equal(s.T(), http.StatusNotFound, rec.Code)

	var envelope map[string]string
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(s.T(), "User not found in suspended list.", envelope["message"])
}

func (s *HandlerSuite) TestUnsuspendMissingMobile() {
	rec := s.do(http.MethodPost, "/screens/suspension/unsuspend",
		map[string]string{"reason": "appeal accepted"})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestSuspendInvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/screens/suspension/suspend",
		bytes.NewReader([]byte("not valid json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}
