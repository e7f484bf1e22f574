package main

import (
	"fmt"
	_ "time/tzdata"

	"kitchen-planner/cmd/config"
	migration "kitchen-planner/cmd/database/migrate"
	"kitchen-planner/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("migration: %v", err)
	}

	redisClient, err := config.ConnectRedis()
	if err != nil {
		// plans are still served, just not cached
		log.Warnf("redis: %v", err)
		redisClient = nil
	}

	app, err := config.NewApp(db, redisClient)
	if err != nil {
		log.Fatalf("app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
