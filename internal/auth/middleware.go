package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/condo-service/internal/domain"
	"github.com/spec-kit/condo-service/internal/repository"
	apperrors "github.com/spec-kit/condo-service/pkg/util/errorutil"
)

const currentUserKey = "auth_current_user"

// UserFinder is the directory lookup the gate depends on.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Gate validates bearer tokens and loads the calling user.
type Gate struct {
	tokens *TokenManager
	users  UserFinder
}

// NewGate constructs the gate.
func NewGate(tokens *TokenManager, users UserFinder) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authenticate enforces authentication for protected routes.
func (g *Gate) Authenticate(c *fiber.Ctx) error {
	user, err := g.Resolve(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return toHTTPError(c, err)
	}
	c.Locals(currentUserKey, user)
	return c.Next()
}

// Optional attaches the caller when an Authorization header is present.
// A header that is present but invalid still fails the request.
func (g *Gate) Optional(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		return c.Next()
	}
	return g.Authenticate(c)
}

// Resolve runs header extraction, token validation and user lookup.
func (g *Gate) Resolve(ctx context.Context, header string) (*domain.User, error) {
	raw, err := bearerToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := g.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load token subject: %w", err)
	}
	return user, nil
}

// CurrentUser retrieves the authenticated user attached by the gate.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(currentUserKey).(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredentials
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingCredentials
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingCredentials
	}
	return token, nil
}

// toHTTPError maps auth failures onto 401/403 responses.
func toHTTPError(c *fiber.Ctx, err error) error {
	var domainErr *apperrors.DomainError
	switch {
	case errors.Is(err, ErrForbidden):
		return apperrors.NewForbidden("Permissão insuficiente")
	case errors.Is(err, ErrMissingCredentials):
		domainErr = apperrors.NewDomainError("MISSING_CREDENTIALS", "Não autenticado", fiber.StatusUnauthorized, nil)
	case errors.Is(err, ErrTokenExpired):
		domainErr = apperrors.NewDomainError("TOKEN_EXPIRED", "Token expirado", fiber.StatusUnauthorized, nil)
	case errors.Is(err, ErrInvalidSignature), errors.Is(err, ErrMalformedToken):
		domainErr = apperrors.NewDomainError("INVALID_TOKEN", "Token inválido", fiber.StatusUnauthorized, nil)
	case errors.Is(err, ErrUserNotFound):
		domainErr = apperrors.NewDomainError("USER_NOT_FOUND", "Usuário não encontrado", fiber.StatusUnauthorized, nil)
	default:
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	domainErr.Err = err
	return domainErr
}
