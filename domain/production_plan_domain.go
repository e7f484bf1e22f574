package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetProductionPlan  = "production plan retrieved successfully"
	MessageSuccessSendProductionPlan = "production plan sent successfully"

	MessageFailedGetProductionPlan  = "failed to retrieve production plan"
	MessageFailedSendProductionPlan = "failed to send production plan"

	ErrRecipientRequired = fmt.Errorf("%w: recipient email is required", ErrInvalidArgument)
)

type (
	PlanLine struct {
		IngredientID  string          `json:"ingredient_id"`
		Name          string          `json:"name"`
		TotalQuantity decimal.Decimal `json:"total_quantity"`
		Unit          string          `json:"unit"`
	}

	BandDemand struct {
		CalorieGroup string `json:"calorie_group"`
		Orders       int    `json:"orders"`
		HasMenu      bool   `json:"has_menu"`
	}

	ProductionPlan struct {
		Date        string       `json:"date"`
		TotalOrders int          `json:"total_orders"`
		Bands       []BandDemand `json:"bands"`
		Ingredients []PlanLine   `json:"ingredients"`
		Warnings    []string     `json:"warnings,omitempty"`
	}

	SendProductionPlanRequest struct {
		Date  string `json:"date" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
	}
)
