package config

import (
	"context"
	"os"
	"time"

	"kitchen-planner/internal/api/handlers"
	"kitchen-planner/internal/api/routes"
	"kitchen-planner/internal/middleware"
	"kitchen-planner/internal/utils"
	"kitchen-planner/internal/utils/mailing"
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
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NewApp wires the services onto a fiber app. redisClient may be nil, in
// which case production plans are computed on every request.
func NewApp(db *gorm.DB, redisClient *redis.Client) (*fiber.App, error) {
	utils.InitValidator()
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: !utils.GetConfigBool("IsProd"),
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	loc := utils.Location()

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   loc.String(),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT", 30),
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(context.Background())
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	var plans planner.PlanCache
	if redisClient != nil {
		plans = planner.NewRedisPlanCache(redisClient, utils.GetConfigDuration("PLAN_CACHE_TTL", 10*time.Minute))
	} else {
		log.Warn("redis is not configured, production plans will not be cached")
		plans = planner.NewNoopPlanCache()
	}

	// Repository
	ingredientRepository := ingredient.NewIngredientRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	dailyMenuRepository := dailymenu.NewDailyMenuRepository(db)
	customerRepository := customer.NewCustomerRepository(db)
	orderRepository := order.NewOrderRepository(db)
	plannerRepository := planner.NewPlannerRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	gateway := midtrans.NewGateway()
	ingredientService := ingredient.NewIngredientService(ingredientRepository, plans)
	menuService := menu.NewMenuService(menuRepository, ingredientRepository, s3, plans)
	dailyMenuService := dailymenu.NewDailyMenuService(dailyMenuRepository, menuRepository, customerRepository, plans, loc)
	customerService := customer.NewCustomerService(customerRepository, plans)
	orderService := order.NewOrderService(
		orderRepository,
		customerRepository,
		gateway,
		plans,
		loc,
		int64(utils.GetConfigInt("MEAL_PRICE", 30000)),
	)
	plannerService := planner.NewPlannerService(plannerRepository, plans, mailer, utils.GetConfig("KITCHEN_EMAIL"), loc)

	// Handler
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	dailyMenuHandler := handlers.NewDailyMenuHandler(dailyMenuService, validator)
	plannerHandler := handlers.NewPlannerHandler(plannerService, validator)
	customerHandler := handlers.NewCustomerHandler(customerService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	clientHandler := handlers.NewClientHandler(dailyMenuService, orderService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		IngredientHandler: ingredientHandler,
		MenuHandler:       menuHandler,
		DailyMenuHandler:  dailyMenuHandler,
		PlannerHandler:    plannerHandler,
		CustomerHandler:   customerHandler,
		OrderHandler:      orderHandler,
		ClientHandler:     clientHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
