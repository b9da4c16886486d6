package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{shared.CodeValidation, http.StatusBadRequest},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeInvalidAmount, http.StatusBadRequest},
		{shared.CodeZeroBalance, http.StatusBadRequest},
		{shared.CodeBalanceExceeded, http.StatusBadRequest},
		{shared.CodeDuplicateCut, http.StatusConflict},
		{shared.CodeOverlapping, http.StatusConflict},
		{shared.CodeInvalidDate, http.StatusBadRequest},
		{shared.CodeAlreadyExists, http.StatusConflict},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 41, 2, 20)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.True(t, resp.Success)

	empty := NewSuccessResponseWithMeta(nil, 0, 1, 0)
	assert.Zero(t, empty.Meta.TotalPages)
}

func TestNewErrorResponse_JSONShape(t *testing.T) {
	resp := NewErrorResponse(shared.CodeOverlapping, "overlap", "req-1", map[string]any{"start_date": "2024-05-02"})
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")

	errObj := body["error"].(map[string]any)
	assert.Equal(t, "OVERLAPPING_RANGE", errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	assert.Equal(t, "2024-05-02", errObj["details"].(map[string]any)["start_date"])
}
