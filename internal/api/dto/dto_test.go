package dto

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/condo-service/internal/domain"
	apperrors "github.com/spec-kit/condo-service/pkg/util/errorutil"
)

func TestCreateUserRequestValidate(t *testing.T) {
	ok := CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "secret"}
	assert.NoError(t, ok.Validate())

	bad := CreateUserRequest{Name: "", Email: "not-an-email", Password: "x", Role: "owner"}
	err := bad.Validate()
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "required", de.Details["name"])
	assert.Equal(t, "email", de.Details["email"])
	assert.Equal(t, "oneof", de.Details["role"])
}

func TestUpdateUserRequestValidate(t *testing.T) {
	assert.NoError(t, (&UpdateUserRequest{}).Validate())

	empty := ""
	err := (&UpdateUserRequest{Name: &empty}).Validate()
	require.Error(t, err)
	assert.Equal(t, "notblank", apperrors.ToDomainError(err).Details["name"])
}

func TestBlankNamesRejected(t *testing.T) {
	blank := "   "

	err := (&CreateUserRequest{Name: blank, Email: "b@example.com", Password: "pw"}).Validate()
	require.Error(t, err)
	assert.Equal(t, "notblank", apperrors.ToDomainError(err).Details["name"])

	err = (&UpdateUserRequest{Name: &blank}).Validate()
	assert.Equal(t, "notblank", apperrors.ToDomainError(err).Details["name"])

	err = (&CondominioRequest{Name: "\t\n"}).Validate()
	assert.Equal(t, "notblank", apperrors.ToDomainError(err).Details["name"])

	err = (&CondominioUpdateRequest{Name: &blank}).Validate()
	assert.Equal(t, "notblank", apperrors.ToDomainError(err).Details["name"])
}

func TestPasswordLimitCountsBytes(t *testing.T) {
	fits := strings.Repeat("é", 36)
	tooLong := strings.Repeat("é", 40)
	require.Equal(t, 72, len(fits))
	require.Equal(t, 80, len(tooLong))

	assert.NoError(t, (&CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: fits}).Validate())

	err := (&CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: tooLong}).Validate()
	require.Error(t, err)
	assert.Equal(t, "passwordbytes", apperrors.ToDomainError(err).Details["password"])

	err = (&UpdateUserRequest{Password: &tooLong}).Validate()
	assert.Equal(t, "passwordbytes", apperrors.ToDomainError(err).Details["password"])
}

func TestLoginRequestValidate(t *testing.T) {
	assert.Error(t, (&LoginRequest{Email: "a@example.com"}).Validate())
	assert.NoError(t, (&LoginRequest{Email: "a@example.com", Password: "x"}).Validate())
}

func TestUserResponseOmitsHash(t *testing.T) {
	resp := NewUserResponse(&domain.User{ID: 3, Name: "Jane", Email: "jane@example.com", PasswordHash: "$2a$...", Role: domain.RoleUser})
	assert.Equal(t, UserResponse{ID: 3, Name: "Jane", Email: "jane@example.com", Role: "user"}, resp)
	assert.Empty(t, NewUserList(nil))
}
