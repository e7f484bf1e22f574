package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyMenu is unique per (date, calorie_group); an empty group means the menu
// is not bound to a calorie band.
type DailyMenu struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date         time.Time `gorm:"type:timestamp;not null;uniqueIndex:idx_daily_menu_day_group" json:"date"`
	CalorieGroup string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_daily_menu_day_group" json:"calorie_group"`

	MenuItems []MenuItem `gorm:"many2many:daily_menu_items;" json:"menu_items"`
	Timestamp
}

func (d *DailyMenu) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type DailyMenuItem struct {
	DailyMenuID uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}
