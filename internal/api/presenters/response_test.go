package presenters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"kitchen-planner/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrIngredientNotFound, fiber.StatusNotFound},
		{domain.ErrDailyMenuTooManyItems, fiber.StatusBadRequest},
		{domain.ErrDailyMenuExists, fiber.StatusConflict},
		{&domain.InsufficientStockError{}, fiber.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", domain.ErrTokenExpired), fiber.StatusUnauthorized},
		{domain.ErrUserNotAllowed, fiber.StatusForbidden},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFromError(tc.err), tc.err.Error())
	}
}

func TestFailResponseIncludesStockDetails(t *testing.T) {
	id := uuid.New()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return FailResponse(c, "failed", &domain.InsufficientStockError{
			IngredientID:   id,
			IngredientName: "Chicken",
			Required:       decimal.NewFromInt(3),
			Available:      decimal.NewFromInt(2),
			Unit:           "kg",
		})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["status"])
	details := body["details"].(map[string]any)
	assert.Equal(t, id.String(), details["ingredient_id"])
	assert.Equal(t, "Chicken", details["ingredient_name"])
}

func TestFailResponseHidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return FailResponse(c, "failed", errors.New("pq: connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "connection refused")
	assert.Contains(t, string(raw), domain.MessageFailedProcessRequest)
}
