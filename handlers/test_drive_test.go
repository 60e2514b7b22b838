package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"carhub/services"

	"github.com/stretchr/testify/assert"
)

func TestBookingErrorStatus(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"booking not found", services.ErrBookingNotFound, http.StatusNotFound},
		{"not booking owner", services.ErrNotBookingOwner, http.StatusForbidden},
		{"not cancellable", services.ErrBookingNotCancellable, http.StatusBadRequest},
		{"invalid status", services.ErrInvalidBookingStatus, http.StatusBadRequest},
		{"unexpected error", errors.New("db is down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := bookingErrorStatus(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.NotEmpty(t, message)
		})
	}
}

func TestBookingErrorStatusUnwrapsWrappedErrors(t *testing.T) {
	// service 層會用 %w 包上下文，分類必須看 errors.Is 而非字面比對
	wrapped := fmt.Errorf("%w: COMPLETED", services.ErrBookingNotCancellable)
	status, _ := bookingErrorStatus(wrapped)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestIsValidTime(t *testing.T) {
	assert.True(t, isValidTime("09:00"))
	assert.True(t, isValidTime("23:59"))

	assert.False(t, isValidTime("25:00"))
	assert.False(t, isValidTime("9am"))
	assert.False(t, isValidTime(""))
}
