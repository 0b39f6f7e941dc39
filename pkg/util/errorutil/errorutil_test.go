package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	notFound := NewNotFound("Usuário não encontrado")
	wrapped := fmt.Errorf("handler: %w", notFound)
	got := ToDomainError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
	assert.Equal(t, "Usuário não encontrado", got.Message)

	cause := errors.New("db down")
	internal := ToDomainError(cause)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.Equal(t, "internal server error", internal.Message)
	assert.ErrorIs(t, internal, cause)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewBadRequest("DUPLICATE_EMAIL", "Email já está em uso"), "DUPLICATE_EMAIL", http.StatusBadRequest},
		{NewUnauthorized("no"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("no"), "FORBIDDEN", http.StatusForbidden},
		{NewConflict("dup", nil), "CONFLICT", http.StatusConflict},
		{NewInternalError(nil), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		de := ToDomainError(tt.err)
		assert.Equal(t, tt.code, de.Code)
		assert.Equal(t, tt.status, de.HTTPStatus)
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	de := NewDomainError("X", "outer", http.StatusTeapot, nil)
	assert.Equal(t, "outer", de.Error())
	de.Err = errors.New("inner")
	assert.Equal(t, "outer: inner", de.Error())
}
