package presenters

import (
	"errors"

	"kitchen-planner/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type ErrorBody struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := ErrorBody{
		Status:  false,
		Message: message,
	}
	if err != nil {
		body.Error = err.Error()
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		body.Details = stockErr
	}
	return c.Status(statusCode).JSON(body)
}

// StatusFromError maps the domain error kinds onto HTTP statuses.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenNotFound):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// FailResponse writes err with the status its kind maps to. Unclassified
// errors are logged and reported with a generic message.
func FailResponse(c *fiber.Ctx, message string, err error) error {
	status := StatusFromError(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return ErrorResponse(c, status, message, errors.New(domain.MessageFailedProcessRequest))
	}
	return ErrorResponse(c, status, message, err)
}
