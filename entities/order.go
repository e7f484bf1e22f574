package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusOnTheWay  = "ON_THE_WAY"
	OrderStatusDelivered = "DELIVERED"

	PaymentStatusUnpaid  = "UNPAID"
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"

	OrderCounterName = "orders"
)

type Order struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber      int64     `gorm:"not null;uniqueIndex" json:"order_number"`
	CustomerID       uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	DeliveryAddress  string    `gorm:"type:text" json:"delivery_address"`
	DeliveryDate     time.Time `gorm:"type:timestamp;not null;index" json:"delivery_date"`
	DeliveryTime     string    `gorm:"type:varchar(5)" json:"delivery_time"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	Calories         int       `json:"calories"`
	SpecialFeatures  string    `gorm:"type:text" json:"special_features,omitempty"`
	Status           string    `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus    string    `gorm:"type:varchar(20);not null" json:"payment_status"`
	PaymentMethod    string    `gorm:"type:varchar(20)" json:"payment_method"`
	PaymentReference *string   `gorm:"type:varchar(64);uniqueIndex" json:"payment_reference,omitempty"`
	IsPrepaid        bool      `json:"is_prepaid"`
	IsAutoOrder      bool      `json:"is_auto_order"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Timestamp
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderCounter backs order numbering; the row is bumped inside the inserting
// transaction so numbers stay unique and contiguous.
type OrderCounter struct {
	Name         string `gorm:"type:varchar(30);primaryKey"`
	CurrentValue int64  `gorm:"not null"`
}
