package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"kitchen-planner/domain"
	"kitchen-planner/internal/api/handlers"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/internal/testdb"
	"kitchen-planner/internal/utils"
	"kitchen-planner/internal/utils/storage"
	"kitchen-planner/pkg/customer"
	"kitchen-planner/pkg/dailymenu"
	"kitchen-planner/pkg/ingredient"
	"kitchen-planner/pkg/jwt"
	"kitchen-planner/pkg/menu"
	"kitchen-planner/pkg/midtrans"
	"kitchen-planner/pkg/order"
	"kitchen-planner/pkg/planner"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app *fiber.App
	jwt jwt.JWTService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	utils.InitValidator()
	db := testdb.New(t)
	loc := time.UTC
	plans := planner.NewNoopPlanCache()
	validator := utils.Validate

	ingredientRepository := ingredient.NewIngredientRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	customerRepository := customer.NewCustomerRepository(db)
	dailyMenuService := dailymenu.NewDailyMenuService(dailymenu.NewDailyMenuRepository(db), menuRepository, customerRepository, plans, loc)
	orderService := order.NewOrderService(
		order.NewOrderRepository(db),
		customerRepository,
		midtrans.NewGatewayWithKey("server-key", false),
		plans,
		loc,
		30000,
	)

	jwtService := jwt.NewJWTServiceWithSecret("secret", jwt.DefaultIssuer)
	app := fiber.New()
	cfg := Config{
		App:               app,
		IngredientHandler: handlers.NewIngredientHandler(ingredient.NewIngredientService(ingredientRepository, plans), validator),
		MenuHandler:       handlers.NewMenuHandler(menu.NewMenuService(menuRepository, ingredientRepository, storage.NewAwsS3WithClient(nil, "", ""), plans), validator),
		DailyMenuHandler:  handlers.NewDailyMenuHandler(dailyMenuService, validator),
		PlannerHandler:    handlers.NewPlannerHandler(planner.NewPlannerService(planner.NewPlannerRepository(db), plans, nil, "", loc), validator),
		CustomerHandler:   handlers.NewCustomerHandler(customer.NewCustomerService(customerRepository, plans), validator),
		OrderHandler:      handlers.NewOrderHandler(orderService, validator),
		ClientHandler:     handlers.NewClientHandler(dailyMenuService, orderService),
		Middleware:        middleware.NewMiddleware(),
		JWTService:        jwtService,
	}
	cfg.Setup()
	return testServer{app: app, jwt: jwtService}
}

func (s testServer) token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := s.jwt.GenerateTokenUser(userID, role)
	require.NoError(t, err)
	return token
}

func (s testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, "GET", "/api/ping", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "pong", body["message"])
}

func TestRoleGuards(t *testing.T) {
	s := newTestServer(t)
	low := s.token(t, "low-1", domain.RoleLowAdmin)
	middle := s.token(t, "mid-1", domain.RoleMiddleAdmin)
	client := s.token(t, "6f1c9a52-8a8e-4b7b-9d0e-2f0c3d7c1a11", domain.RoleCustomer)

	status, _ := s.do(t, "GET", "/api/v1/ingredients", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = s.do(t, "GET", "/api/v1/ingredients", client, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = s.do(t, "GET", "/api/v1/ingredients", low, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = s.do(t, "GET", "/api/v1/auto-orders?date=2024-01-10", low, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = s.do(t, "GET", "/api/v1/auto-orders?date=2024-01-10", middle, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = s.do(t, "GET", "/api/v1/client/current-order", middle, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := s.do(t, "GET", "/api/v1/client/current-order", client, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, body["data"])
}

func TestProduceThroughHTTP(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "admin-1", domain.RoleSuperAdmin)

	status, body := s.do(t, "POST", "/api/v1/ingredients", admin, map[string]any{"name": "Rice", "quantity": "1", "unit": "kg"})
	require.Equal(t, fiber.StatusCreated, status)
	riceID := body["data"].(map[string]any)["id"].(string)

	status, body = s.do(t, "POST", "/api/v1/menu-items", admin, map[string]any{
		"name":     "Nasi Goreng",
		"calories": 550,
		"ingredients": []map[string]any{
			{"ingredient_id": riceID, "quantity_required": "0.4"},
		},
	})
	require.Equal(t, fiber.StatusCreated, status)
	itemID := body["data"].(map[string]any)["id"].(string)

	status, body = s.do(t, "POST", "/api/v1/menu-items/"+itemID+"/produce", admin, map[string]any{"quantity": 5})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	details := body["details"].(map[string]any)
	assert.Equal(t, "Rice", details["ingredient_name"])
	assert.Equal(t, riceID, details["ingredient_id"])

	status, _ = s.do(t, "POST", "/api/v1/menu-items/"+itemID+"/produce", admin, map[string]any{"quantity": 0})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = s.do(t, "POST", "/api/v1/menu-items/"+itemID+"/produce", admin, map[string]any{"quantity": 2})
	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, body["data"].(map[string]any)["new_stock"])

	status, body = s.do(t, "PUT", "/api/v1/menu-items/"+itemID, admin, map[string]any{"name": "Nasi Goreng Spesial"})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, body["data"].(map[string]any)["stock"])
	assert.EqualValues(t, 550, body["data"].(map[string]any)["calories"])

	status, _ = s.do(t, "DELETE", "/api/v1/ingredients/"+riceID, admin, nil)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = s.do(t, "GET", "/api/v1/menu-items/not-a-uuid", admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestOrdersThroughHTTP(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "admin-1", domain.RoleSuperAdmin)

	status, body := s.do(t, "POST", "/api/v1/customers", admin, map[string]any{
		"name":          "Budi",
		"phone":         "0811",
		"calories":      1500,
		"order_pattern": "daily",
	})
	require.Equal(t, fiber.StatusCreated, status)
	customerID := body["data"].(map[string]any)["id"].(string)

	status, body = s.do(t, "POST", "/api/v1/auto-orders", admin, map[string]any{"target_date": "2024-01-10"})
	require.Equal(t, fiber.StatusCreated, status)
	assert.EqualValues(t, 1, body["data"].(map[string]any)["created_orders"])

	status, body = s.do(t, "GET", "/api/v1/orders?date=2024-01-10", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	orders := body["data"].([]any)
	require.Len(t, orders, 1)
	orderID := orders[0].(map[string]any)["id"].(string)

	status, _ = s.do(t, "PATCH", "/api/v1/orders/"+orderID+"/status", admin, map[string]any{"status": "DELIVERED"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = s.do(t, "PATCH", "/api/v1/orders/"+orderID+"/status", admin, map[string]any{"status": "PREPARING"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "PREPARING", body["data"].(map[string]any)["status"])

	client := s.token(t, customerID, domain.RoleCustomer)
	status, body = s.do(t, "GET", "/api/v1/client/current-order", client, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, orderID, body["data"].(map[string]any)["id"])

	status, body = s.do(t, "GET", "/api/v1/client/profile", client, nil)
	assert.Equal(t, fiber.StatusOK, status)
	profile := body["data"].(map[string]any)
	assert.Equal(t, "Budi", profile["name"])
	assert.EqualValues(t, 1500, profile["plan"].(map[string]any)["daily_calories"])

	status, _ = s.do(t, "POST", "/webhook/midtrans", "", map[string]any{
		"order_id":           "ORDER-1-1",
		"status_code":        "200",
		"gross_amount":       "30000.00",
		"signature_key":      "forged",
		"transaction_status": "settlement",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
