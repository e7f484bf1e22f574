package handlers

import (
	"kitchen-planner/domain"
	"kitchen-planner/internal/api/presenters"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/pkg/dailymenu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DailyMenuHandler interface {
		GetDailyMenu(c *fiber.Ctx) error
		ListDailyMenus(c *fiber.Ctx) error
		CreateDailyMenu(c *fiber.Ctx) error
		SetDailyMenu(c *fiber.Ctx) error
		DeleteDailyMenu(c *fiber.Ctx) error
	}

	dailyMenuHandler struct {
		dailyMenuService dailymenu.DailyMenuService
		validator        *validator.Validate
	}
)

func NewDailyMenuHandler(dailyMenuService dailymenu.DailyMenuService, validator *validator.Validate) DailyMenuHandler {
	return &dailyMenuHandler{
		dailyMenuService: dailyMenuService,
		validator:        validator,
	}
}

// GetDailyMenu answers with null data when no menu is assigned.
func (h *dailyMenuHandler) GetDailyMenu(c *fiber.Ctx) error {
	res, err := h.dailyMenuService.GetDailyMenu(c.Context(), dateQuery(c), c.Query("group"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetDailyMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDailyMenu)
}

func (h *dailyMenuHandler) ListDailyMenus(c *fiber.Ctx) error {
	res, err := h.dailyMenuService.ListDailyMenus(c.Context(), dateQuery(c))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetDailyMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDailyMenu)
}

func (h *dailyMenuHandler) CreateDailyMenu(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.DailyMenuRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDailyMenu, err)
	}

	res, err := h.dailyMenuService.CreateDailyMenu(c.Context(), principal, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedCreateDailyMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDailyMenu)
}

func (h *dailyMenuHandler) SetDailyMenu(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.DailyMenuRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetDailyMenu, err)
	}

	res, err := h.dailyMenuService.SetDailyMenu(c.Context(), principal, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedSetDailyMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetDailyMenu)
}

func (h *dailyMenuHandler) DeleteDailyMenu(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.dailyMenuService.DeleteDailyMenu(c.Context(), principal, c.Query("date"), c.Query("group")); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedDeleteDailyMenu, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDailyMenu)
}
