package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fooddelivery/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.Error
		code   apperr.Code
		status int
	}{
		{"not found", apperr.NotFound("order not found"), apperr.CodeNotFound, http.StatusNotFound},
		{"forbidden", apperr.Forbidden("access denied"), apperr.CodeForbidden, http.StatusForbidden},
		{"invalid state", apperr.InvalidState("terminal"), apperr.CodeInvalidState, http.StatusBadRequest},
		{"precondition", apperr.Precondition("cart is empty"), apperr.CodePrecondition, http.StatusBadRequest},
		{"payment failed", apperr.PaymentFailed("declined"), apperr.CodePaymentFailed, http.StatusPaymentRequired},
		{"inconsistent", apperr.Inconsistent("menu item missing"), apperr.CodeInconsistent, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	base := apperr.NotFound("order not found")
	wrapped := fmt.Errorf("placing order: %w", base)

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeNotFound, ae.Code)

	assert.Nil(t, apperr.As(errors.New("plain")))
}

func TestWithCauseKeepsCodeAndExposesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperr.Internal("cannot create order now").WithCause(cause)

	assert.Equal(t, apperr.CodeInternal, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestIsCode(t *testing.T) {
	err := apperr.InvalidState("invalid cancellation reason")
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidState))
	assert.False(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.False(t, apperr.IsCode(nil, apperr.CodeInvalidState))
}
