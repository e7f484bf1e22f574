package planner

import (
	"context"
	"time"

	"kitchen-planner/entities"

	"gorm.io/gorm"
)

type (
	PlannerRepository interface {
		GetOrdersForDay(ctx context.Context, start time.Time, end time.Time) ([]entities.Order, error)
		GetMenusForDay(ctx context.Context, start time.Time, end time.Time) ([]entities.DailyMenu, error)
	}

	plannerRepository struct {
		db *gorm.DB
	}
)

func NewPlannerRepository(db *gorm.DB) PlannerRepository {
	return &plannerRepository{db: db}
}

func (r *plannerRepository) GetOrdersForDay(ctx context.Context, start time.Time, end time.Time) ([]entities.Order, error) {
	var orders []entities.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("delivery_date >= ? AND delivery_date < ?", start, end).
		Order("order_number ASC").
		Find(&orders).Error
	return orders, err
}

// GetMenusForDay loads every band's menu with the full recipe tree.
func (r *plannerRepository) GetMenusForDay(ctx context.Context, start time.Time, end time.Time) ([]entities.DailyMenu, error) {
	var menus []entities.DailyMenu
	err := r.db.WithContext(ctx).
		Preload("MenuItems.Ingredients.Ingredient").
		Where("date >= ? AND date < ?", start, end).
		Find(&menus).Error
	return menus, err
}
