package handlers

import (
	"kitchen-planner/domain"
	"kitchen-planner/internal/api/presenters"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/pkg/customer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CustomerHandler interface {
		GetCustomers(c *fiber.Ctx) error
		GetCustomer(c *fiber.Ctx) error
		AddCustomer(c *fiber.Ctx) error
		UpdateCustomer(c *fiber.Ctx) error
	}

	customerHandler struct {
		customerService customer.CustomerService
		validator       *validator.Validate
	}
)

func NewCustomerHandler(customerService customer.CustomerService, validator *validator.Validate) CustomerHandler {
	return &customerHandler{
		customerService: customerService,
		validator:       validator,
	}
}

func (h *customerHandler) GetCustomers(c *fiber.Ctx) error {
	res, err := h.customerService.GetCustomers(c.Context())
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetCustomers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCustomers)
}

func (h *customerHandler) GetCustomer(c *fiber.Ctx) error {
	res, err := h.customerService.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetCustomers, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCustomers)
}

func (h *customerHandler) AddCustomer(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.AddCustomerRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddCustomer, err)
	}

	res, err := h.customerService.AddCustomer(c.Context(), principal, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedAddCustomer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddCustomer)
}

func (h *customerHandler) UpdateCustomer(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.UpdateCustomerRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCustomer, err)
	}

	res, err := h.customerService.UpdateCustomer(c.Context(), principal, c.Params("id"), *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateCustomer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCustomer)
}
