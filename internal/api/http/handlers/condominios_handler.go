package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/condo-service/internal/api/dto"
	"github.com/spec-kit/condo-service/internal/auth"
	"github.com/spec-kit/condo-service/internal/service"
)

// CondominiosHandler exposes condominio CRUD.
type CondominiosHandler struct {
	condos *service.CondominioService
}

func NewCondominiosHandler(condos *service.CondominioService) *CondominiosHandler {
	return &CondominiosHandler{condos: condos}
}

func (h *CondominiosHandler) List(c *fiber.Ctx) error {
	condos, err := h.condos.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCondominioList(condos))
}

func (h *CondominiosHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	condo, err := h.condos.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCondominioResponse(condo))
}

func (h *CondominiosHandler) Create(c *fiber.Ctx) error {
	var req dto.CondominioRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.CurrentUser(c)
	condo, err := h.condos.Create(c.UserContext(), actor, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCondominioResponse(condo))
}

func (h *CondominiosHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.CondominioUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.CurrentUser(c)
	condo, err := h.condos.Update(c.UserContext(), actor, id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCondominioResponse(condo))
}

func (h *CondominiosHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	actor, _ := auth.CurrentUser(c)
	if err := h.condos.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.JSON(dto.DetailResponse{Detail: "Condomínio removido com sucesso"})
}
