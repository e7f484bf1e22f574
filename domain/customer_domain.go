package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGetCustomers   = "customers retrieved successfully"
	MessageSuccessAddCustomer    = "customer added successfully"
	MessageSuccessUpdateCustomer = "customer updated successfully"
	MessageSuccessGetProfile     = "profile retrieved successfully"

	MessageFailedGetCustomers   = "failed to retrieve customers"
	MessageFailedAddCustomer    = "failed to add customer"
	MessageFailedUpdateCustomer = "failed to update customer"
	MessageFailedGetProfile     = "failed to retrieve profile"

	ErrCustomerNotFound        = fmt.Errorf("%w: customer not found", ErrNotFound)
	ErrPhoneTaken              = fmt.Errorf("%w: phone is already registered", ErrConflict)
	ErrInvalidOrderPattern     = fmt.Errorf("%w: unknown order pattern", ErrInvalidArgument)
	ErrInvalidCustomerCalories = fmt.Errorf("%w: calories must not be negative", ErrInvalidArgument)
)

// PlanName labels the single subscription every customer is on.
const PlanName = "Daily plan"

type (
	AddCustomerRequest struct {
		Name         string `json:"name" validate:"required,max=255"`
		Phone        string `json:"phone" validate:"required,max=32"`
		Address      string `json:"address"`
		Calories     int    `json:"calories" validate:"min=0"`
		OrderPattern string `json:"order_pattern" validate:"omitempty,oneof=daily every_other_day_even every_other_day_odd"`
		Preferences  string `json:"preferences"`
		IsActive     *bool  `json:"is_active"`
	}

	UpdateCustomerRequest struct {
		Name         string `json:"name" validate:"omitempty,max=255"`
		Address      string `json:"address"`
		Calories     *int   `json:"calories" validate:"omitempty,min=0"`
		OrderPattern string `json:"order_pattern" validate:"omitempty,oneof=daily every_other_day_even every_other_day_odd"`
		Preferences  string `json:"preferences"`
		IsActive     *bool  `json:"is_active"`
	}

	CustomerResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Phone        string    `json:"phone"`
		Address      string    `json:"address"`
		Calories     int       `json:"calories"`
		CalorieGroup string    `json:"calorie_group"`
		OrderPattern string    `json:"order_pattern"`
		Preferences  string    `json:"preferences,omitempty"`
		IsActive     bool      `json:"is_active"`
		CreatedAt    time.Time `json:"created_at"`
	}

	ClientPlan struct {
		Name          string    `json:"name"`
		StartDate     time.Time `json:"start_date"`
		EndDate       time.Time `json:"end_date"`
		DailyCalories int       `json:"daily_calories"`
	}

	// ClientProfileResponse is what a customer sees about themselves.
	ClientProfileResponse struct {
		ID               string     `json:"id"`
		Name             string     `json:"name"`
		Phone            string     `json:"phone"`
		Calories         int        `json:"calories"`
		CalorieGroup     string     `json:"calorie_group"`
		IsActive         bool       `json:"is_active"`
		CreatedAt        time.Time  `json:"created_at"`
		ConsumedCalories int        `json:"consumed_calories"`
		Plan             ClientPlan `json:"plan"`
	}
)
