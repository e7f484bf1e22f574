package handlers

import (
	"kitchen-planner/domain"
	"kitchen-planner/internal/api/presenters"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/pkg/planner"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PlannerHandler interface {
		GetProductionPlan(c *fiber.Ctx) error
		SendProductionPlan(c *fiber.Ctx) error
	}

	plannerHandler struct {
		plannerService planner.PlannerService
		validator      *validator.Validate
	}
)

func NewPlannerHandler(plannerService planner.PlannerService, validator *validator.Validate) PlannerHandler {
	return &plannerHandler{
		plannerService: plannerService,
		validator:      validator,
	}
}

func (h *plannerHandler) GetProductionPlan(c *fiber.Ctx) error {
	res, err := h.plannerService.GetProductionPlan(c.Context(), dateQuery(c))
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetProductionPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProductionPlan)
}

func (h *plannerHandler) SendProductionPlan(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}
	req := new(domain.SendProductionPlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendProductionPlan, err)
	}

	if err := h.plannerService.SendProductionPlan(c.Context(), principal, *req); err != nil {
		return presenters.FailResponse(c, domain.MessageFailedSendProductionPlan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendProductionPlan)
}
