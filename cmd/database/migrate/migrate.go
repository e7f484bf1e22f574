package migration

import (
	"fmt"

	"kitchen-planner/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			log.Warnf("uuid-ossp extension: %v", err)
		}
	}

	if err := db.SetupJoinTable(&entities.DailyMenu{}, "MenuItems", &entities.DailyMenuItem{}); err != nil {
		return fmt.Errorf("setup daily menu join table: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"ingredient", &entities.Ingredient{}},
		{"stock movement", &entities.StockMovement{}},
		{"menu item", &entities.MenuItem{}},
		{"recipe ingredient", &entities.RecipeIngredient{}},
		{"daily menu", &entities.DailyMenu{}},
		{"daily menu item", &entities.DailyMenuItem{}},
		{"customer", &entities.Customer{}},
		{"order", &entities.Order{}},
		{"order counter", &entities.OrderCounter{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("migrating %s table: %w", m.name, err)
		}
	}

	if err := seedOrderCounter(db); err != nil {
		return err
	}

	log.Info("Database migration complete")
	return nil
}

// seedOrderCounter makes sure the counter row exists and is not behind the
// highest order number already stored.
func seedOrderCounter(db *gorm.DB) error {
	var maxNumber int64
	if err := db.Model(&entities.Order{}).
		Select("COALESCE(MAX(order_number), 0)").
		Scan(&maxNumber).Error; err != nil {
		return fmt.Errorf("reading max order number: %w", err)
	}

	counter := entities.OrderCounter{Name: entities.OrderCounterName}
	if err := db.Where(entities.OrderCounter{Name: entities.OrderCounterName}).
		Attrs(entities.OrderCounter{CurrentValue: maxNumber}).
		FirstOrCreate(&counter).Error; err != nil {
		return fmt.Errorf("seeding order counter: %w", err)
	}
	if counter.CurrentValue < maxNumber {
		return db.Model(&entities.OrderCounter{}).
			Where("name = ?", entities.OrderCounterName).
			Update("current_value", maxNumber).Error
	}
	return nil
}
