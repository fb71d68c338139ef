package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"ALREADY_RECORDED", http.StatusConflict},
		{"OUT_OF_RANGE", http.StatusUnprocessableEntity},
		{"LOCATION_UNAVAILABLE", http.StatusBadRequest},
		{"INVALID_STATUS", http.StatusBadRequest},
		{"STORAGE_FAILURE", http.StatusInternalServerError},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponseConstructors(t *testing.T) {
	ok := NewSuccessResponse(map[string]string{"hello": "world"})
	assert.True(t, ok.Success)
	assert.Nil(t, ok.Error)

	fail := NewErrorResponseWithRequestID("NOT_FOUND", "gone", "req-1")
	assert.False(t, fail.Success)
	assert.Equal(t, "NOT_FOUND", fail.Error.Code)
	assert.Equal(t, "req-1", fail.Error.RequestID)
}
