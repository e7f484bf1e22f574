package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGetDailyMenu    = "daily menu retrieved successfully"
	MessageSuccessCreateDailyMenu = "daily menu created successfully"
	MessageSuccessSetDailyMenu    = "daily menu saved successfully"
	MessageSuccessDeleteDailyMenu = "daily menu deleted successfully"

	MessageFailedGetDailyMenu    = "failed to retrieve daily menu"
	MessageFailedCreateDailyMenu = "failed to create daily menu"
	MessageFailedSetDailyMenu    = "failed to save daily menu"
	MessageFailedDeleteDailyMenu = "failed to delete daily menu"

	ErrDailyMenuNotFound     = fmt.Errorf("%w: daily menu not found", ErrNotFound)
	ErrDailyMenuExists       = fmt.Errorf("%w: menu already exists for this date, use PUT to update", ErrConflict)
	ErrDailyMenuTooManyItems = fmt.Errorf("%w: maximum %d items allowed", ErrInvalidArgument, MaxDailyMenuItems)
	ErrDailyMenuNoItems      = fmt.Errorf("%w: at least one item is required", ErrInvalidArgument)
	ErrInvalidCalorieGroup   = fmt.Errorf("%w: unknown calorie group", ErrInvalidArgument)
)

type (
	DailyMenuRequest struct {
		Date         string   `json:"date" validate:"required"`
		CalorieGroup string   `json:"calorie_group" validate:"omitempty"`
		MenuItemIDs  []string `json:"menu_item_ids" validate:"dive,uuid"`
	}

	DailyMenuItemResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Calories    int    `json:"calories"`
		Image       string `json:"image,omitempty"`
	}

	DailyMenuResponse struct {
		ID           string                  `json:"id"`
		Date         string                  `json:"date"`
		CalorieGroup string                  `json:"calorie_group,omitempty"`
		MenuItems    []DailyMenuItemResponse `json:"menu_items"`
		CreatedAt    time.Time               `json:"created_at"`
	}

	ClientDailyMenuResponse struct {
		Date         string                  `json:"date"`
		CalorieGroup string                  `json:"calorie_group,omitempty"`
		Items        []DailyMenuItemResponse `json:"items"`
	}
)
