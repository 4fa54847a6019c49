package accounts_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"goaccounts/internal/accounts/adapters/http/accounts"
	"goaccounts/internal/accounts/domain/services"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		kind     services.Kind
		expected int
	}{
		{kind: services.KindValidationFailed, expected: http.StatusBadRequest},
		{kind: services.KindAccountAlreadyExists, expected: http.StatusBadRequest},
		{kind: services.KindRegistrationFailed, expected: http.StatusBadRequest},
		{kind: services.KindInvalidCredentials, expected: http.StatusUnauthorized},
		{kind: services.KindAccountNotFound, expected: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			failure := services.NewFailure(tt.kind, "message", "source")
			assert.Equal(t, tt.expected, accounts.StatusCode(failure.Status))
		})
	}

	assert.Equal(t, http.StatusInternalServerError, accounts.StatusCode(services.Status(0)))
}
