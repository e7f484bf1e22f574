package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MovementProduction = "production"
	MovementAdjustment = "adjustment"
	MovementInitial    = "initial"
)

type Ingredient struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name     string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Quantity decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"quantity"`
	Unit     string          `gorm:"type:varchar(20);not null" json:"unit"`

	Timestamp
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// StockMovement is one signed change of an ingredient's quantity. Rows carry
// no foreign key so the audit trail outlives deleted ingredients.
type StockMovement struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	IngredientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	MenuItemID       *uuid.UUID      `gorm:"type:uuid;index" json:"menu_item_id,omitempty"`
	Quantity         decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"quantity"`
	PreviousQuantity decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"previous_quantity"`
	NewQuantity      decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"new_quantity"`
	Reason           string          `gorm:"type:varchar(30);not null" json:"reason"`
	PerformedBy      string          `gorm:"type:varchar(255)" json:"performed_by"`

	Timestamp
}

func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
