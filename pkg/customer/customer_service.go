package customer

import (
	"context"
	"errors"
	"strings"

	"kitchen-planner/domain"
	"kitchen-planner/entities"

	"gorm.io/gorm"
)

type (
	CustomerService interface {
		GetCustomers(ctx context.Context) ([]domain.CustomerResponse, error)
		GetCustomer(ctx context.Context, id string) (domain.CustomerResponse, error)
		AddCustomer(ctx context.Context, principal domain.Principal, req domain.AddCustomerRequest) (domain.CustomerResponse, error)
		UpdateCustomer(ctx context.Context, principal domain.Principal, id string, req domain.UpdateCustomerRequest) (domain.CustomerResponse, error)
	}

	customerService struct {
		customerRepository CustomerRepository
		plans              domain.PlanInvalidator
	}
)

func NewCustomerService(customerRepository CustomerRepository, plans domain.PlanInvalidator) CustomerService {
	return &customerService{
		customerRepository: customerRepository,
		plans:              plans,
	}
}

func IsOrderPattern(pattern string) bool {
	switch pattern {
	case entities.PatternDaily, entities.PatternEveryOtherDayEven, entities.PatternEveryOtherDayOdd:
		return true
	}
	return false
}

func ToCustomerResponse(c entities.Customer) domain.CustomerResponse {
	return domain.CustomerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Phone:        c.Phone,
		Address:      c.Address,
		Calories:     c.Calories,
		CalorieGroup: domain.CalorieBand(domain.EffectiveCalories(0, c.Calories)),
		OrderPattern: c.OrderPattern,
		Preferences:  c.Preferences,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	}
}

func (s *customerService) GetCustomers(ctx context.Context) ([]domain.CustomerResponse, error) {
	customers, err := s.customerRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		res = append(res, ToCustomerResponse(c))
	}
	return res, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (domain.CustomerResponse, error) {
	customerID, err := domain.ParseID(id)
	if err != nil {
		return domain.CustomerResponse{}, err
	}
	c, err := s.customerRepository.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CustomerResponse{}, domain.ErrCustomerNotFound
		}
		return domain.CustomerResponse{}, err
	}
	return ToCustomerResponse(*c), nil
}

func (s *customerService) AddCustomer(ctx context.Context, principal domain.Principal, req domain.AddCustomerRequest) (domain.CustomerResponse, error) {
	phone := strings.TrimSpace(req.Phone)
	if strings.TrimSpace(req.Name) == "" || phone == "" {
		return domain.CustomerResponse{}, domain.InvalidArgument("name and phone are required")
	}
	if req.Calories < 0 {
		return domain.CustomerResponse{}, domain.ErrInvalidCustomerCalories
	}
	pattern := req.OrderPattern
	if pattern == "" {
		pattern = entities.PatternDaily
	}
	if !IsOrderPattern(pattern) {
		return domain.CustomerResponse{}, domain.ErrInvalidOrderPattern
	}

	if _, err := s.customerRepository.GetByPhone(ctx, phone); err == nil {
		return domain.CustomerResponse{}, domain.ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CustomerResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	c := entities.Customer{
		Name:         strings.TrimSpace(req.Name),
		Phone:        phone,
		Address:      req.Address,
		Calories:     req.Calories,
		OrderPattern: pattern,
		Preferences:  req.Preferences,
		IsActive:     active,
	}
	if err := s.customerRepository.Create(ctx, &c); err != nil {
		return domain.CustomerResponse{}, err
	}
	return ToCustomerResponse(c), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, principal domain.Principal, id string, req domain.UpdateCustomerRequest) (domain.CustomerResponse, error) {
	customerID, err := domain.ParseID(id)
	if err != nil {
		return domain.CustomerResponse{}, err
	}
	if _, err := s.customerRepository.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CustomerResponse{}, domain.ErrCustomerNotFound
		}
		return domain.CustomerResponse{}, err
	}

	fields := map[string]any{}
	if name := strings.TrimSpace(req.Name); name != "" {
		fields["name"] = name
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if req.Calories != nil {
		if *req.Calories < 0 {
			return domain.CustomerResponse{}, domain.ErrInvalidCustomerCalories
		}
		fields["calories"] = *req.Calories
	}
	if req.OrderPattern != "" {
		if !IsOrderPattern(req.OrderPattern) {
			return domain.CustomerResponse{}, domain.ErrInvalidOrderPattern
		}
		fields["order_pattern"] = req.OrderPattern
	}
	if req.Preferences != "" {
		fields["preferences"] = req.Preferences
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if len(fields) > 0 {
		if err := s.customerRepository.Update(ctx, customerID, fields); err != nil {
			return domain.CustomerResponse{}, err
		}
		if s.plans != nil {
			s.plans.Invalidate(ctx)
		}
	}

	c, err := s.customerRepository.GetByID(ctx, customerID)
	if err != nil {
		return domain.CustomerResponse{}, err
	}
	return ToCustomerResponse(*c), nil
}
