package order

import (
	"context"
	"time"

	"kitchen-planner/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	OrderRepository interface {
		Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
		WithTx(tx *gorm.DB) OrderRepository

		LockCounter(ctx context.Context) error
		NextOrderNumber(ctx context.Context) (int64, error)
		Create(ctx context.Context, order *entities.Order) error
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
		GetByPaymentReference(ctx context.Context, reference string) (*entities.Order, error)
		GetByDay(ctx context.Context, start time.Time, end time.Time) ([]entities.Order, error)
		GetCustomerIDsWithOrders(ctx context.Context, start time.Time, end time.Time) ([]uuid.UUID, error)
		GetForCustomerOnDay(ctx context.Context, customerID uuid.UUID, start time.Time, end time.Time) ([]entities.Order, error)
		GetLatestOpenForCustomer(ctx context.Context, customerID uuid.UUID) (*entities.Order, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, from string, to string) (bool, error)
		Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

// LockCounter takes the counter row lock up front so a batch can read and
// write orders without another batch interleaving.
func (r *orderRepository) LockCounter(ctx context.Context) error {
	if r.db.Dialector.Name() == "sqlite" {
		return nil
	}
	var counter entities.OrderCounter
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", entities.OrderCounterName).
		Find(&counter).Error
	return err
}

// NextOrderNumber bumps the counter row. Inside a transaction the row stays
// locked until commit, so numbers are handed out one writer at a time and a
// rollback returns the number.
func (r *orderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&entities.OrderCounter{}).
		Where("name = ?", entities.OrderCounterName).
		Update("current_value", gorm.Expr("current_value + 1"))
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		var maxNumber int64
		if err := db.Model(&entities.Order{}).Select("COALESCE(MAX(order_number), 0)").Scan(&maxNumber).Error; err != nil {
			return 0, err
		}
		counter := entities.OrderCounter{Name: entities.OrderCounterName, CurrentValue: maxNumber + 1}
		if err := db.Create(&counter).Error; err != nil {
			return 0, err
		}
		return counter.CurrentValue, nil
	}

	var counter entities.OrderCounter
	if err := db.Where("name = ?", entities.OrderCounterName).First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.CurrentValue, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).Preload("Customer").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByPaymentReference(ctx context.Context, reference string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).Where("payment_reference = ?", reference).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByDay(ctx context.Context, start time.Time, end time.Time) ([]entities.Order, error) {
	var orders []entities.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("delivery_date >= ? AND delivery_date < ?", start, end).
		Order("order_number ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetCustomerIDsWithOrders(ctx context.Context, start time.Time, end time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("delivery_date >= ? AND delivery_date < ?", start, end).
		Distinct().
		Pluck("customer_id", &ids).Error
	return ids, err
}

func (r *orderRepository) GetForCustomerOnDay(ctx context.Context, customerID uuid.UUID, start time.Time, end time.Time) ([]entities.Order, error) {
	var orders []entities.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND delivery_date >= ? AND delivery_date < ?", customerID, start, end).
		Order("order_number ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetLatestOpenForCustomer(ctx context.Context, customerID uuid.UUID) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status <> ?", customerID, entities.OrderStatusDelivered).
		Order("created_at DESC").
		Order("order_number DESC").
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves the order only if it is still in status from.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from string, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&entities.Order{}).Where("id = ?", id).Updates(fields).Error
}
