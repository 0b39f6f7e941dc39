package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/condo-service/internal/api/dto"
	"github.com/spec-kit/condo-service/internal/auth"
	"github.com/spec-kit/condo-service/internal/service"
)

// UsersHandler exposes the user directory.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	actor, _ := auth.CurrentUser(c)
	users, err := h.users.List(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserList(users))
}

// Me handles GET /users/me and GET /me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	return c.JSON(dto.NewUserResponse(user))
}

// Create handles POST /users. The caller is optional; it only matters when
// the payload asks for the admin role.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.CurrentUser(c)

	user, err := h.users.Create(c.UserContext(), actor, service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	actor, _ := auth.CurrentUser(c)
	user, err := h.users.Get(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.CurrentUser(c)

	user, err := h.users.Update(c.UserContext(), actor, id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	actor, _ := auth.CurrentUser(c)
	if err := h.users.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.JSON(dto.DetailResponse{Detail: "Usuário removido com sucesso"})
}
