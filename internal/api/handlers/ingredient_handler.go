package handlers

import (
	"kitchen-planner/domain"
	"kitchen-planner/internal/api/presenters"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/pkg/ingredient"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		GetIngredients(c *fiber.Ctx) error
		AddIngredient(c *fiber.Ctx) error
		UpsertIngredient(c *fiber.Ctx) error
		UpdateIngredient(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error
		GetMovements(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
		validator         *validator.Validate
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService, validator *validator.Validate) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetIngredients(c.Context())
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) AddIngredient(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.AddIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddIngredient, err)
	}

	res, err := h.ingredientService.AddIngredient(c.Context(), principal, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedAddIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddIngredient)
}

func (h *ingredientHandler) UpsertIngredient(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.AddIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	res, err := h.ingredientService.UpsertIngredient(c.Context(), principal, *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateIngredient)
}

func (h *ingredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.UpdateIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	res, err := h.ingredientService.UpdateIngredient(c.Context(), principal, c.Params("id"), *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedUpdateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateIngredient)
}

func (h *ingredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.ingredientService.DeleteIngredient(c.Context(), principal, c.Params("id")); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedDeleteIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteIngredient)
}

func (h *ingredientHandler) GetMovements(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetMovements(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetMovements, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMovements)
}
