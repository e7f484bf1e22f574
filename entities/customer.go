package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PatternDaily             = "daily"
	PatternEveryOtherDayEven = "every_other_day_even"
	PatternEveryOtherDayOdd  = "every_other_day_odd"
)

type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"phone"`
	Address      string    `gorm:"type:text" json:"address"`
	Calories     int       `json:"calories"`
	OrderPattern string    `gorm:"type:varchar(30);not null" json:"order_pattern"`
	Preferences  string    `gorm:"type:text" json:"preferences,omitempty"`
	IsActive     bool      `gorm:"not null" json:"is_active"`

	Timestamp
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
