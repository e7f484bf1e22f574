package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessAddIngredient    = "ingredient added successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageSuccessGetMovements     = "stock movements retrieved successfully"

	MessageFailedGetIngredients   = "failed to retrieve ingredients"
	MessageFailedAddIngredient    = "failed to add ingredient"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"
	MessageFailedGetMovements     = "failed to retrieve stock movements"

	ErrIngredientNotFound   = fmt.Errorf("%w: ingredient not found", ErrNotFound)
	ErrIngredientInUse      = fmt.Errorf("%w: ingredient is used by a recipe", ErrConflict)
	ErrIngredientExists     = fmt.Errorf("%w: ingredient name already exists", ErrConflict)
	ErrNegativeQuantity     = fmt.Errorf("%w: quantity must not be negative", ErrInvalidArgument)
	ErrIngredientNameNeeded = fmt.Errorf("%w: name is required", ErrInvalidArgument)
)

const DefaultUnit = "kg"

type (
	AddIngredientRequest struct {
		Name     string          `json:"name" validate:"required,max=255"`
		Quantity decimal.Decimal `json:"quantity"`
		Unit     string          `json:"unit" validate:"omitempty,max=20"`
	}

	UpdateIngredientRequest struct {
		Name     string           `json:"name" validate:"omitempty,max=255"`
		Quantity *decimal.Decimal `json:"quantity"`
		Unit     string           `json:"unit" validate:"omitempty,max=20"`
	}

	IngredientResponse struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Quantity  decimal.Decimal `json:"quantity"`
		Unit      string          `json:"unit"`
		CreatedAt time.Time       `json:"created_at"`
		UpdatedAt time.Time       `json:"updated_at"`
	}

	StockMovementResponse struct {
		ID               string          `json:"id"`
		IngredientID     string          `json:"ingredient_id"`
		MenuItemID       string          `json:"menu_item_id,omitempty"`
		Quantity         decimal.Decimal `json:"quantity"`
		PreviousQuantity decimal.Decimal `json:"previous_quantity"`
		NewQuantity      decimal.Decimal `json:"new_quantity"`
		Reason           string          `json:"reason"`
		PerformedBy      string          `json:"performed_by"`
		CreatedAt        time.Time       `json:"created_at"`
	}
)
