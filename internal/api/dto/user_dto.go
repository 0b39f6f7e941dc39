package dto

import "github.com/spec-kit/condo-service/internal/domain"

// CreateUserRequest payload for new users.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,passwordbytes"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (r *CreateUserRequest) Validate() error {
	return Struct(r)
}

// UpdateUserRequest is a partial update; omitted fields keep their value.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitnil,notblank,max=100"`
	Email    *string `json:"email" validate:"omitnil,email,max=100"`
	Password *string `json:"password" validate:"omitnil,min=1,passwordbytes"`
	Role     *string `json:"role" validate:"omitnil,oneof=user admin"`
}

func (r *UpdateUserRequest) Validate() error {
	return Struct(r)
}

// UserResponse is the public view of a user. The password hash never leaves the service.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

// NewUserList maps a slice of users.
func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
