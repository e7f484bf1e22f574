package handlers

import (
	"kitchen-planner/domain"
	"kitchen-planner/internal/api/presenters"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/pkg/order"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	OrderHandler interface {
		GetOrders(c *fiber.Ctx) error
		CreateOrder(c *fiber.Ctx) error
		UpdateOrderStatus(c *fiber.Ctx) error
		GenerateAutoOrders(c *fiber.Ctx) error
		AutoOrderPreview(c *fiber.Ctx) error
		CreatePayment(c *fiber.Ctx) error
		PaymentNotification(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	res, err := h.orderService.GetOrders(c.Context(), dateQuery(c))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) CreateOrder(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.CreateOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	res, err := h.orderService.CreateOrder(c.Context(), principal, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedCreateOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *orderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.UpdateOrderStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStatus, err)
	}

	res, err := h.orderService.UpdateOrderStatus(c.Context(), principal, c.Params("id"), req.Status)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateStatus)
}

// GenerateAutoOrders takes an optional target_date and defaults to today.
func (h *orderHandler) GenerateAutoOrders(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.AutoOrderRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	res, err := h.orderService.GenerateAutoOrders(c.Context(), principal, req.TargetDate)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedAutoOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAutoOrders)
}

func (h *orderHandler) AutoOrderPreview(c *fiber.Ctx) error {
	res, err := h.orderService.AutoOrderPreview(c.Context(), c.Query("date"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedAutoOrderStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAutoOrderStats)
}

func (h *orderHandler) CreatePayment(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	res, err := h.orderService.CreatePayment(c.Context(), principal, c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedCreatePayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePayment)
}

// PaymentNotification is called by Midtrans and authenticated by signature only.
func (h *orderHandler) PaymentNotification(c *fiber.Ctx) error {
	req := new(domain.MidtransNotification)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.orderService.HandlePaymentNotification(c.Context(), *req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedNotification, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
