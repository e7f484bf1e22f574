package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleSuperAdmin  = "SUPER_ADMIN"
	RoleMiddleAdmin = "MIDDLE_ADMIN"
	RoleLowAdmin    = "LOW_ADMIN"
	RoleCourier     = "COURIER"
	RoleCustomer    = "CUSTOMER"

	// DefaultCalories is the daily target assumed when neither the order nor the
	// customer carries one.
	DefaultCalories = 1600

	MaxDailyMenuItems = 5
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrParseUUID      = fmt.Errorf("%w: failed to parse UUID", ErrInvalidArgument)
	ErrInvalidDate    = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidArgument)
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Principal is the authenticated caller, resolved from the identity provider's
// token at the HTTP boundary and passed to every mutating operation.
type Principal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// PlanInvalidator is told about every write that can change a production plan.
type PlanInvalidator interface {
	Invalidate(ctx context.Context)
}

type InsufficientStockError struct {
	IngredientID   uuid.UUID       `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Required       decimal.Decimal `json:"required"`
	Available      decimal.Decimal `json:"available"`
	Unit           string          `json:"unit"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s is not enough: required %s %s, available %s %s",
		e.IngredientName, e.Required.String(), e.Unit, e.Available.String(), e.Unit)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func ParseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrParseUUID
	}
	return parsed, nil
}
