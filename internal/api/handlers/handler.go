package handlers

import (
	"time"

	"kitchen-planner/domain"
	"kitchen-planner/internal/api/presenters"
	"kitchen-planner/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// unauthorized answers requests that reached a handler without a principal.
func unauthorized(c *fiber.Ctx) error {
	return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
}

// dateQuery defaults to today in the kitchen's time zone.
func dateQuery(c *fiber.Ctx) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return time.Now().In(utils.Location()).Format(domain.DateLayout)
}
