package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/condo-service/internal/api/dto"
	"github.com/spec-kit/condo-service/internal/auth"
	"github.com/spec-kit/condo-service/internal/service"
	apperrors "github.com/spec-kit/condo-service/pkg/util/errorutil"
)

// AuthHandler exposes login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return apperrors.NewDomainError("INVALID_CREDENTIALS", "Credenciais inválidas", fiber.StatusUnauthorized, nil)
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.TokenResponse{AccessToken: result.AccessToken, TokenType: "bearer"})
}

// Logout handles POST /logout. Tokens are stateless, so nothing is revoked.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	h.auth.Logout(c.UserContext(), user)
	return c.JSON(dto.DetailResponse{Detail: "Logout realizado com sucesso."})
}
