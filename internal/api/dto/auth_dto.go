package dto

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks required fields.
func (r *LoginRequest) Validate() error {
	return Struct(r)
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DetailResponse carries a human readable confirmation.
type DetailResponse struct {
	Detail string `json:"detail"`
}
