package handlers

import (
	"kitchen-planner/domain"
	"kitchen-planner/internal/api/presenters"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/pkg/dailymenu"
	"kitchen-planner/pkg/order"

	"github.com/gofiber/fiber/v2"
)

type (
	// ClientHandler serves customers; their token subject is the customer id.
	ClientHandler interface {
		GetDailyMenu(c *fiber.Ctx) error
		GetCurrentOrder(c *fiber.Ctx) error
		GetProfile(c *fiber.Ctx) error
	}

	clientHandler struct {
		dailyMenuService dailymenu.DailyMenuService
		orderService     order.OrderService
	}
)

func NewClientHandler(dailyMenuService dailymenu.DailyMenuService, orderService order.OrderService) ClientHandler {
	return &clientHandler{
		dailyMenuService: dailyMenuService,
		orderService:     orderService,
	}
}

func (h *clientHandler) GetDailyMenu(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	res, err := h.dailyMenuService.TodayMenuForCustomer(c.Context(), principal.UserID)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetDailyMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDailyMenu)
}

func (h *clientHandler) GetCurrentOrder(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	res, err := h.orderService.CurrentOrder(c.Context(), principal.UserID)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetCurrentOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCurrentOrder)
}

func (h *clientHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	res, err := h.orderService.ClientProfile(c.Context(), principal.UserID)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}
