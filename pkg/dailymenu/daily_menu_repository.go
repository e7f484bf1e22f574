package dailymenu

import (
	"context"
	"time"

	"kitchen-planner/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	DailyMenuRepository interface {
		Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
		WithTx(tx *gorm.DB) DailyMenuRepository

		GetByDay(ctx context.Context, start time.Time, end time.Time, calorieGroup string) (*entities.DailyMenu, error)
		GetAllByDay(ctx context.Context, start time.Time, end time.Time) ([]entities.DailyMenu, error)
		Create(ctx context.Context, menu *entities.DailyMenu) error
		ReplaceItems(ctx context.Context, menuID uuid.UUID, menuItemIDs []uuid.UUID) error
		Touch(ctx context.Context, menuID uuid.UUID) error
		Delete(ctx context.Context, menuID uuid.UUID) error
	}

	dailyMenuRepository struct {
		db *gorm.DB
	}
)

func NewDailyMenuRepository(db *gorm.DB) DailyMenuRepository {
	return &dailyMenuRepository{db: db}
}

func (r *dailyMenuRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *dailyMenuRepository) WithTx(tx *gorm.DB) DailyMenuRepository {
	return &dailyMenuRepository{db: tx}
}

func (r *dailyMenuRepository) GetByDay(ctx context.Context, start time.Time, end time.Time, calorieGroup string) (*entities.DailyMenu, error) {
	var menu entities.DailyMenu
	if err := r.db.WithContext(ctx).
		Preload("MenuItems").
		Where("date >= ? AND date < ? AND calorie_group = ?", start, end, calorieGroup).
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *dailyMenuRepository) GetAllByDay(ctx context.Context, start time.Time, end time.Time) ([]entities.DailyMenu, error) {
	var menus []entities.DailyMenu
	err := r.db.WithContext(ctx).
		Preload("MenuItems").
		Where("date >= ? AND date < ?", start, end).
		Order("calorie_group ASC").
		Find(&menus).Error
	return menus, err
}

func (r *dailyMenuRepository) Create(ctx context.Context, menu *entities.DailyMenu) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(menu).Error
}

// ReplaceItems rewrites the menu's item set through the join table.
func (r *dailyMenuRepository) ReplaceItems(ctx context.Context, menuID uuid.UUID, menuItemIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("daily_menu_id = ?", menuID).Delete(&entities.DailyMenuItem{}).Error; err != nil {
		return err
	}
	if len(menuItemIDs) == 0 {
		return nil
	}
	links := make([]entities.DailyMenuItem, 0, len(menuItemIDs))
	for _, id := range menuItemIDs {
		links = append(links, entities.DailyMenuItem{DailyMenuID: menuID, MenuItemID: id})
	}
	return db.Create(&links).Error
}

func (r *dailyMenuRepository) Touch(ctx context.Context, menuID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.DailyMenu{}).
		Where("id = ?", menuID).
		Update("updated_at", time.Now().UTC()).Error
}

func (r *dailyMenuRepository) Delete(ctx context.Context, menuID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("daily_menu_id = ?", menuID).Delete(&entities.DailyMenuItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", menuID).Delete(&entities.DailyMenu{}).Error
}
