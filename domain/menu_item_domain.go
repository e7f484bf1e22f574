package domain

import (
	"fmt"
	"mime/multipart"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetMenuItems    = "menu items retrieved successfully"
	MessageSuccessAddMenuItem     = "menu item added successfully"
	MessageSuccessUpdateMenuItem  = "menu item updated successfully"
	MessageSuccessDeleteMenuItem  = "menu item deleted successfully"
	MessageSuccessProduceMenuItem = "menu item produced successfully"
	MessageSuccessUploadImage     = "menu item image uploaded successfully"

	MessageFailedGetMenuItems    = "failed to retrieve menu items"
	MessageFailedAddMenuItem     = "failed to add menu item"
	MessageFailedUpdateMenuItem  = "failed to update menu item"
	MessageFailedDeleteMenuItem  = "failed to delete menu item"
	MessageFailedProduceMenuItem = "failed to produce menu item"
	MessageFailedUploadImage     = "failed to upload menu item image"

	ErrMenuItemNotFound       = fmt.Errorf("%w: menu item not found", ErrNotFound)
	ErrInvalidProduceQuantity = fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	ErrInvalidCalories        = fmt.Errorf("%w: calories must not be negative", ErrInvalidArgument)
	ErrInvalidStock           = fmt.Errorf("%w: stock must not be negative", ErrInvalidArgument)
	ErrInvalidImageFormat     = fmt.Errorf("%w: invalid image format", ErrInvalidArgument)
)

type (
	RecipeLineRequest struct {
		IngredientID     string          `json:"ingredient_id" validate:"required,uuid"`
		QuantityRequired decimal.Decimal `json:"quantity_required"`
	}

	MenuItemRequest struct {
		Name        string              `json:"name" validate:"required,max=255"`
		Description string              `json:"description"`
		Calories    int                 `json:"calories" validate:"min=0"`
		Stock       int                 `json:"stock" validate:"min=0"`
		Image       string              `json:"image"`
		Ingredients []RecipeLineRequest `json:"ingredients" validate:"dive"`
	}

	// UpdateMenuItemRequest changes only the fields present in the body. A nil
	// Ingredients keeps the recipe; an empty list clears it.
	UpdateMenuItemRequest struct {
		Name        *string             `json:"name" validate:"omitempty,max=255"`
		Description *string             `json:"description"`
		Calories    *int                `json:"calories" validate:"omitempty,min=0"`
		Stock       *int                `json:"stock" validate:"omitempty,min=0"`
		Image       *string             `json:"image"`
		Ingredients []RecipeLineRequest `json:"ingredients" validate:"dive"`
	}

	RecipeLineResponse struct {
		IngredientID     string          `json:"ingredient_id"`
		IngredientName   string          `json:"ingredient_name"`
		QuantityRequired decimal.Decimal `json:"quantity_required"`
		Unit             string          `json:"unit"`
	}

	MenuItemResponse struct {
		ID          string               `json:"id"`
		Name        string               `json:"name"`
		Description string               `json:"description"`
		Calories    int                  `json:"calories"`
		Stock       int                  `json:"stock"`
		Image       string               `json:"image,omitempty"`
		Ingredients []RecipeLineResponse `json:"ingredients"`
	}

	ProduceRequest struct {
		Quantity int `json:"quantity" validate:"required,min=1"`
	}

	Deduction struct {
		IngredientID   string          `json:"ingredient_id"`
		IngredientName string          `json:"ingredient_name"`
		Amount         decimal.Decimal `json:"amount"`
		Remaining      decimal.Decimal `json:"remaining"`
		Unit           string          `json:"unit"`
	}

	ProduceResponse struct {
		MenuItemID       string      `json:"menu_item_id"`
		ProducedQuantity int         `json:"produced_quantity"`
		NewStock         int         `json:"new_stock"`
		Deductions       []Deduction `json:"deductions"`
	}

	UploadMenuItemImageRequest struct {
		MenuItemID string                `json:"menu_item_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}
)
