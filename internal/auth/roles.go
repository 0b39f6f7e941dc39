package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/condo-service/internal/domain"
)

// CheckRole is the role predicate layered on top of the gate.
func CheckRole(user *domain.User, allowed ...domain.Role) error {
	if user == nil {
		return ErrMissingCredentials
	}
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireRole ensures the current user holds one of the allowed roles.
// It must run after Gate.Authenticate.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, _ := CurrentUser(c)
		if err := CheckRole(user, allowed...); err != nil {
			return toHTTPError(c, err)
		}
		return c.Next()
	}
}

// RequireAdmin restricts a route to admins.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
