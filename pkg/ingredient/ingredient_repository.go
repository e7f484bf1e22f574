package ingredient

import (
	"context"

	"kitchen-planner/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	IngredientRepository interface {
		Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
		WithTx(tx *gorm.DB) IngredientRepository

		GetAll(ctx context.Context) ([]entities.Ingredient, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error)
		GetByName(ctx context.Context, name string) (*entities.Ingredient, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Ingredient, error)
		LockByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Ingredient, error)
		Create(ctx context.Context, ingredient *entities.Ingredient) error
		Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
		Delete(ctx context.Context, id uuid.UUID) error
		Decrement(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
		CountRecipeUsage(ctx context.Context, id uuid.UUID) (int64, error)
		AddMovements(ctx context.Context, movements []entities.StockMovement) error
		GetMovements(ctx context.Context, ingredientID uuid.UUID) ([]entities.StockMovement, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *ingredientRepository) WithTx(tx *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: tx}
}

func (r *ingredientRepository) GetAll(ctx context.Context) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("created_at ASC").
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

// LockByIDs takes row locks in id order so concurrent producers lock in the
// same sequence.
func (r *ingredientRepository) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	query := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC")
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&entities.Ingredient{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ingredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Ingredient{}).Error
}

// Decrement subtracts amount only while enough stock remains and reports
// whether the row was changed.
func (r *ingredientRepository) Decrement(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *ingredientRepository) CountRecipeUsage(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&count).Error
	return count, err
}

func (r *ingredientRepository) AddMovements(ctx context.Context, movements []entities.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&movements).Error
}

func (r *ingredientRepository) GetMovements(ctx context.Context, ingredientID uuid.UUID) ([]entities.StockMovement, error) {
	var movements []entities.StockMovement
	err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}
