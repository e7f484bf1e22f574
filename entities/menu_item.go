package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Calories    int       `gorm:"not null" json:"calories"`
	Stock       int       `gorm:"not null" json:"stock"`
	ImageURL    string    `json:"image_url,omitempty"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:MenuItemID" json:"ingredients,omitempty"`
	Timestamp
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient is one recipe line; QuantityRequired is per produced unit.
type RecipeIngredient struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	MenuItemID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_line" json:"menu_item_id"`
	IngredientID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_line;index" json:"ingredient_id"`
	QuantityRequired decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"quantity_required"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Timestamp
}

func (r *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
