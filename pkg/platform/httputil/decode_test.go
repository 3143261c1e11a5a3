package httputil

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kycdesk/pkg/domain-errors"
)

type testRequest struct {
	Name string `json:"name"`
}

func (r *testRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *testRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestDecodeAndPrepareNormalizesAndValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "  alice  "}`))
	rec := httptest.NewRecorder()

	decoded, ok := DecodeAndPrepare[testRequest](rec, req, testLogger(), context.Background(), "req-1")
	require.True(t, ok)
	assert.Equal(t, "alice", decoded.Name)
}

func TestDecodeAndPrepareValidationFailure(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "   "}`))
	rec := httptest.NewRecorder()

	_, ok := DecodeAndPrepare[testRequest](rec, req, testLogger(), context.Background(), "req-1")
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestDecodeAndPrepareInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()

	_, ok := DecodeAndPrepare[testRequest](rec, req, testLogger(), context.Background(), "req-1")
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, dErrors.New(dErrors.CodeConflict, "This user is already suspended."))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"This user is already suspended."`)
}

func TestWriteErrorUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
