package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeConsistency, http.StatusInternalServerError},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("maps known domain codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("CLIENT_NOT_FOUND"))
		assert.Equal(t, ErrCodeAlreadyExists, NormalizeErrorCode("ALREADY_EXISTS"))
		assert.Equal(t, ErrCodeConcurrencyConflict, NormalizeErrorCode("CONCURRENCY_CONFLICT"))
		assert.Equal(t, ErrCodeConsistency, NormalizeErrorCode("CONSISTENCY_VIOLATION"))
		assert.Equal(t, ErrCodeInvalidState, NormalizeErrorCode("EXCEEDS_REMAINING"))
	})

	t.Run("folds field level INVALID codes into validation", func(t *testing.T) {
		assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_AMOUNT"))
		assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_NUMBER"))
		assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_KIND"))
	})

	t.Run("passes unknown codes through", func(t *testing.T) {
		assert.Equal(t, "SOMETHING_ELSE", NormalizeErrorCode("SOMETHING_ELSE"))
	})
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestListRequestNormalize(t *testing.T) {
	var req ListRequest
	req.Normalize()

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, "created_at", req.OrderBy)
	assert.Equal(t, "desc", req.OrderDir)
}
