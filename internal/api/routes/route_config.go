package routes

import (
	"kitchen-planner/domain"
	"kitchen-planner/internal/api/handlers"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	IngredientHandler handlers.IngredientHandler
	MenuHandler       handlers.MenuHandler
	DailyMenuHandler  handlers.DailyMenuHandler
	PlannerHandler    handlers.PlannerHandler
	CustomerHandler   handlers.CustomerHandler
	OrderHandler      handlers.OrderHandler
	ClientHandler     handlers.ClientHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()

	admin := c.App.Group("/api/v1",
		c.Middleware.AuthMiddleware(c.JWTService),
	)
	c.Ingredients(admin)
	c.MenuItems(admin)
	c.DailyMenus(admin)
	c.ProductionPlan(admin)
	c.Customers(admin)
	c.Orders(admin)
	c.Client(admin)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.OrderHandler.PaymentNotification)
}

func (c *Config) adminOnly() fiber.Handler {
	return c.Middleware.RequireRoles(middleware.AdminRoles...)
}

func (c *Config) Ingredients(router fiber.Router) {
	ingredients := router.Group("/ingredients", c.adminOnly())
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Post("", c.IngredientHandler.AddIngredient)
	ingredients.Put("/upsert", c.IngredientHandler.UpsertIngredient)
	ingredients.Put("/:id", c.IngredientHandler.UpdateIngredient)
	ingredients.Delete("/:id", c.IngredientHandler.DeleteIngredient)
	ingredients.Get("/:id/movements", c.IngredientHandler.GetMovements)
}

func (c *Config) MenuItems(router fiber.Router) {
	items := router.Group("/menu-items", c.adminOnly())
	items.Get("", c.MenuHandler.GetMenuItems)
	items.Post("", c.MenuHandler.CreateMenuItem)
	items.Get("/:id", c.MenuHandler.GetMenuItem)
	items.Put("/:id", c.MenuHandler.UpdateMenuItem)
	items.Delete("/:id", c.MenuHandler.DeleteMenuItem)
	items.Post("/:id/produce", c.MenuHandler.ProduceMenuItem)
	items.Post("/:id/image", c.MenuHandler.UploadMenuItemImage)
}

func (c *Config) DailyMenus(router fiber.Router) {
	menus := router.Group("/daily-menus", c.adminOnly())
	menus.Get("", c.DailyMenuHandler.GetDailyMenu)
	menus.Get("/day", c.DailyMenuHandler.ListDailyMenus)
	menus.Post("", c.DailyMenuHandler.CreateDailyMenu)
	menus.Put("", c.DailyMenuHandler.SetDailyMenu)
	menus.Delete("", c.DailyMenuHandler.DeleteDailyMenu)
}

func (c *Config) ProductionPlan(router fiber.Router) {
	plan := router.Group("/production-plan", c.adminOnly())
	plan.Get("", c.PlannerHandler.GetProductionPlan)
	plan.Post("/send", c.PlannerHandler.SendProductionPlan)
}

func (c *Config) Customers(router fiber.Router) {
	customers := router.Group("/customers", c.adminOnly())
	customers.Get("", c.CustomerHandler.GetCustomers)
	customers.Post("", c.CustomerHandler.AddCustomer)
	customers.Get("/:id", c.CustomerHandler.GetCustomer)
	customers.Put("/:id", c.CustomerHandler.UpdateCustomer)
}

func (c *Config) Orders(router fiber.Router) {
	orders := router.Group("/orders", c.adminOnly())
	orders.Get("", c.OrderHandler.GetOrders)
	orders.Post("", c.OrderHandler.CreateOrder)
	orders.Patch("/:id/status", c.OrderHandler.UpdateOrderStatus)
	orders.Post("/:id/payment", c.OrderHandler.CreatePayment)

	// generating orders for everyone is kept to the senior admins
	auto := router.Group("/auto-orders", c.Middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleMiddleAdmin))
	auto.Post("", c.OrderHandler.GenerateAutoOrders)
	auto.Get("", c.OrderHandler.AutoOrderPreview)
}

func (c *Config) Client(router fiber.Router) {
	client := router.Group("/client", c.Middleware.RequireRoles(domain.RoleCustomer))
	client.Get("/daily-menu", c.ClientHandler.GetDailyMenu)
	client.Get("/current-order", c.ClientHandler.GetCurrentOrder)
	client.Get("/profile", c.ClientHandler.GetProfile)
}
