package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"unknown error", ErrCodeUnknown, http.StatusInternalServerError},
		{"internal error", ErrCodeInternal, http.StatusInternalServerError},
		{"validation error", ErrCodeValidation, http.StatusBadRequest},
		{"validation required", ErrCodeValidationRequired, http.StatusBadRequest},
		{"validation format", ErrCodeValidationFormat, http.StatusBadRequest},
		{"validation range", ErrCodeValidationRange, http.StatusBadRequest},
		{"unauthorized", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrCodeForbidden, http.StatusForbidden},
		{"token expired", ErrCodeTokenExpired, http.StatusUnauthorized},
		{"token invalid", ErrCodeTokenInvalid, http.StatusUnauthorized},
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"conflict", ErrCodeConflict, http.StatusConflict},
		{"bad request", ErrCodeBadRequest, http.StatusBadRequest},
		{"invalid json", ErrCodeInvalidJSON, http.StatusBadRequest},
		{"rate limited", ErrCodeRateLimited, http.StatusTooManyRequests},
		{"unmapped code falls back to 500", "ERR_SOMETHING_NEW", http.StatusInternalServerError},
		{"empty code falls back to 500", "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestDomainErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", "NOT_FOUND", http.StatusNotFound},
		{"already exists", "ALREADY_EXISTS", http.StatusConflict},
		{"duplicate code", "DUPLICATE_CODE", http.StatusConflict},
		{"duplicate number", "DUPLICATE_NUMBER", http.StatusConflict},
		{"optimistic lock clash", "CONCURRENT_MODIFICATION", http.StatusConflict},
		{"concurrency conflict", "CONCURRENCY_CONFLICT", http.StatusConflict},
		{"unauthorized", "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", "FORBIDDEN", http.StatusForbidden},
		{"invalid input", "INVALID_INPUT", http.StatusBadRequest},
		{"closed period rejection", "PERIOD_LOCKED", http.StatusLocked},
		{"internal", "INTERNAL_ERROR", http.StatusInternalServerError},
		{"business rule falls back to 422", "OVERPAY", http.StatusUnprocessableEntity},
		{"insufficient stock falls back to 422", "INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"closure blocker falls back to 422", "CLOSURE_BLOCKED", http.StatusUnprocessableEntity},
		{"empty code falls back to 422", "", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DomainErrorStatus(tt.code))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "client not found")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "client not found", resp.Error.Message)
	assert.Empty(t, resp.Error.RequestID)
	assert.WithinDuration(t, time.Now(), resp.Error.Timestamp, time.Second)
	assert.Nil(t, resp.Data)
	assert.Nil(t, resp.Meta)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("PERIOD_LOCKED", "period 2026-03 is locked", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PERIOD_LOCKED", resp.Error.Code)
	assert.Equal(t, "period 2026-03 is locked", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "year", Message: "year is required"},
		{Field: "month", Message: "month must be between 1 and 12"},
	}
	resp := NewValidationErrorResponse("invalid request", "req-456", details)

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "invalid request", resp.Error.Message)
	assert.Equal(t, "req-456", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "month", resp.Error.Details[1].Field)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID("OVERPAY", "payment exceeds outstanding debt", "req-789")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, false, decoded["success"])
	errObj, ok := decoded["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "OVERPAY", errObj["code"])
	assert.Equal(t, "payment exceeds outstanding debt", errObj["message"])
	assert.Equal(t, "req-789", errObj["request_id"])
	// empty details must be omitted
	_, hasDetails := errObj["details"]
	assert.False(t, hasDetails)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		page          int
		pageSize      int
		expectedPages int
		expectedSize  int
	}{
		{"exact division", 100, 1, 20, 5, 20},
		{"with remainder", 101, 1, 20, 6, 20},
		{"single page", 5, 1, 20, 1, 20},
		{"empty result", 0, 1, 20, 0, 20},
		{"zero page size defaults to 20", 100, 1, 0, 5, 20},
		{"negative page size defaults to 20", 100, 1, -1, 5, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithMeta([]string{"a"}, tt.total, tt.page, tt.pageSize)

			assert.True(t, resp.Success)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, tt.total, resp.Meta.Total)
			assert.Equal(t, tt.page, resp.Meta.Page)
			assert.Equal(t, tt.expectedSize, resp.Meta.PageSize)
			assert.Equal(t, tt.expectedPages, resp.Meta.TotalPages)
		})
	}
}

func TestDefaultListRequest(t *testing.T) {
	req := DefaultListRequest()

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, "created_at", req.OrderBy)
	assert.Equal(t, "desc", req.OrderDir)
}
