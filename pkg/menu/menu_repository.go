package menu

import (
	"context"

	"kitchen-planner/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	MenuRepository interface {
		Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
		WithTx(tx *gorm.DB) MenuRepository

		GetAll(ctx context.Context) ([]entities.MenuItem, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entities.MenuItem, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.MenuItem, error)
		Create(ctx context.Context, item *entities.MenuItem) error
		Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
		Delete(ctx context.Context, id uuid.UUID) error
		ReplaceRecipe(ctx context.Context, menuItemID uuid.UUID, lines []entities.RecipeIngredient) error
		IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *menuRepository) WithTx(tx *gorm.DB) MenuRepository {
	return &menuRepository{db: tx}
}

func (r *menuRepository) GetAll(ctx context.Context) ([]entities.MenuItem, error) {
	var items []entities.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *menuRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.MenuItem, error) {
	var items []entities.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *menuRepository) Create(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *menuRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&entities.MenuItem{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the item together with its recipe lines and daily menu links.
func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("menu_item_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if err := db.Where("menu_item_id = ?", id).Delete(&entities.DailyMenuItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entities.MenuItem{}).Error
}

// ReplaceRecipe swaps the whole recipe; call it inside a transaction.
func (r *menuRepository) ReplaceRecipe(ctx context.Context, menuItemID uuid.UUID, lines []entities.RecipeIngredient) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("menu_item_id = ?", menuItemID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].MenuItemID = menuItemID
	}
	return db.Omit(clause.Associations).Create(&lines).Error
}

func (r *menuRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity)).Error
}
