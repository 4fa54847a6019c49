package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goaccounts/internal/accounts/domain/services"
)

func TestNewFailureClassification(t *testing.T) {
	tests := []struct {
		kind   services.Kind
		status services.Status
	}{
		{services.KindValidationFailed, services.StatusBadRequest},
		{services.KindAccountAlreadyExists, services.StatusBadRequest},
		{services.KindRegistrationFailed, services.StatusBadRequest},
		{services.KindInvalidCredentials, services.StatusUnauthorized},
		{services.KindAccountNotFound, services.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			f := services.NewFailure(tt.kind, "msg", "source")
			assert.Equal(t, tt.status, f.Status)
			assert.Equal(t, "msg", f.Error())
		})
	}
}

func TestFailureMatchesSentinelByKind(t *testing.T) {
	f := services.NewFailure(services.KindInvalidCredentials, services.MsgInvalidCredentials, "login-account-usecase")
	wrapped := fmt.Errorf("invalid credentials: %w", f)

	assert.ErrorIs(t, wrapped, services.ErrInvalidCredentials)
	assert.NotErrorIs(t, wrapped, services.ErrAccountNotFound)
	assert.NotErrorIs(t, errors.New("other"), services.ErrInvalidCredentials)

	got, ok := services.AsFailure(wrapped)
	require.True(t, ok)
	assert.Same(t, f, got)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "BadRequest", services.StatusBadRequest.String())
	assert.Equal(t, "Unauthorized", services.StatusUnauthorized.String())
	assert.Equal(t, "NotFound", services.StatusNotFound.String())
	assert.Equal(t, "Unknown", services.Status(0).String())
}
