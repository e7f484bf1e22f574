package customer

import (
	"context"

	"kitchen-planner/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CustomerRepository interface {
		GetAll(ctx context.Context) ([]entities.Customer, error)
		GetActive(ctx context.Context) ([]entities.Customer, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
		GetByPhone(ctx context.Context, phone string) (*entities.Customer, error)
		Create(ctx context.Context, customer *entities.Customer) error
		Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	}

	customerRepository struct {
		db *gorm.DB
	}
)

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetAll(ctx context.Context) ([]entities.Customer, error) {
	var customers []entities.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) GetActive(ctx context.Context) ([]entities.Customer, error) {
	var customers []entities.Customer
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var customer entities.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entities.Customer, error) {
	var customer entities.Customer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&entities.Customer{}).Where("id = ?", id).Updates(fields).Error
}
