package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"github.com/riskibarqy/pickem-pool/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) googleResponseEnvelope {
	t.Helper()
	var body googleResponseEnvelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, googleAPIVersion, body.APIVersion)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return body
}

func TestWriteSuccess_DataOnly(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusCreated, weekDTO{Week: 19, Label: "Wildcard"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Nil(t, body.Error)
	assert.NotNil(t, body.Data)
}

func TestWriteError_InvalidInput(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Nil(t, body.Data)
	assert.Equal(t, "INVALID_ARGUMENT", body.Error.Status)
	assert.Equal(t, http.StatusBadRequest, body.Error.Code)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, errorDomain, body.Error.Errors[0].Domain)
	assert.Equal(t, "invalidInput", body.Error.Errors[0].Reason)
	assert.Contains(t, body.Error.Message, "bad payload")
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid week", err: fmt.Errorf("parse: %w", pickem.ErrInvalidWeek), wantStatus: http.StatusBadRequest, wantCode: "INVALID_ARGUMENT"},
		{name: "invalid feature side", err: pickem.ErrInvalidFeatureSide, wantStatus: http.StatusBadRequest, wantCode: "INVALID_ARGUMENT"},
		{name: "not found", err: fmt.Errorf("%w: pooler=3", usecase.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "already scored", err: fmt.Errorf("%w: week=2", usecase.ErrConflict), wantStatus: http.StatusConflict, wantCode: "FAILED_PRECONDITION"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHENTICATED"},
		{name: "provider down", err: fmt.Errorf("%w: timeout", usecase.ErrDataUnavailable), wantStatus: http.StatusServiceUnavailable, wantCode: "UNAVAILABLE"},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantCode, got.Status)
		})
	}
}

func TestWriteError_MasksInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("dial tcp 10.0.0.7:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "internal server error", body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}
