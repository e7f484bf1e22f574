package handlers

import (
	"kitchen-planner/domain"
	"kitchen-planner/internal/api/presenters"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		GetMenuItems(c *fiber.Ctx) error
		GetMenuItem(c *fiber.Ctx) error
		CreateMenuItem(c *fiber.Ctx) error
		UpdateMenuItem(c *fiber.Ctx) error
		DeleteMenuItem(c *fiber.Ctx) error
		ProduceMenuItem(c *fiber.Ctx) error
		UploadMenuItemImage(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) GetMenuItems(c *fiber.Ctx) error {
	res, err := h.menuService.GetMenuItems(c.Context())
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetMenuItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuItems)
}

func (h *menuHandler) GetMenuItem(c *fiber.Ctx) error {
	res, err := h.menuService.GetMenuItem(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetMenuItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuItems)
}

func (h *menuHandler) CreateMenuItem(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.MenuItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMenuItem, err)
	}

	res, err := h.menuService.CreateMenuItem(c.Context(), principal, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedAddMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddMenuItem)
}

func (h *menuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.UpdateMenuItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	res, err := h.menuService.UpdateMenuItem(c.Context(), principal, c.Params("id"), *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuItem)
}

func (h *menuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.menuService.DeleteMenuItem(c.Context(), principal, c.Params("id")); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedDeleteMenuItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenuItem)
}

func (h *menuHandler) ProduceMenuItem(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.ProduceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProduceMenuItem, domain.ErrInvalidProduceQuantity)
	}

	res, err := h.menuService.ProduceMenuItem(c.Context(), principal, c.Params("id"), req.Quantity)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedProduceMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessProduceMenuItem)
}

func (h *menuHandler) UploadMenuItemImage(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.menuService.UploadMenuItemImage(c.Context(), principal, c.Params("id"), image)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
