package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendapro/backend/internal/domain/shared"
)

func TestHTTPStatusForKind(t *testing.T) {
	tests := []struct {
		kind     shared.ErrorKind
		expected int
	}{
		{shared.KindValidation, http.StatusBadRequest},
		{shared.KindUnauthorized, http.StatusUnauthorized},
		{shared.KindNotFound, http.StatusNotFound},
		{shared.KindConflict, http.StatusConflict},
		{shared.KindInvalidState, http.StatusUnprocessableEntity},
		{shared.KindIntegrity, http.StatusInternalServerError},
		{shared.ErrorKind("bogus"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatusForKind(tt.kind))
		})
	}
}

func TestHTTPStatusFor(t *testing.T) {
	t.Run("domain error maps by kind", func(t *testing.T) {
		err := shared.NewDomainError(shared.KindNotFound, "PROVIDER_NOT_FOUND", "provider not found")
		assert.Equal(t, http.StatusNotFound, HTTPStatusFor(err))
	})

	t.Run("wrapped domain error unwraps", func(t *testing.T) {
		err := fmt.Errorf("loading purchase: %w", shared.ErrConcurrencyConflict)
		assert.Equal(t, http.StatusConflict, HTTPStatusFor(err))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, HTTPStatusFor(errors.New("boom")))
	})
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeUnauthorized, "token expired", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeUnauthorized, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), `"details"`)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-456", []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
	})

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
}

func TestListRequestNormalize(t *testing.T) {
	var req ListRequest
	req.Normalize()

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, "desc", req.OrderDir)
	assert.Equal(t, 0, req.Offset())

	req.Page = 3
	req.PageSize = 25
	assert.Equal(t, 50, req.Offset())
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 41, 2, 20)

	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
