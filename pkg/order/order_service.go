package order

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"kitchen-planner/domain"
	"kitchen-planner/entities"
	"kitchen-planner/internal/utils"
	"kitchen-planner/pkg/customer"
	"kitchen-planner/pkg/midtrans"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultPaymentMethod  = "CASH"
	PaymentMethodMidtrans = "MIDTRANS"
	defaultOrderItemName  = "Daily meal"
)

// nextStatus is the only forward move allowed from each status.
var nextStatus = map[string]string{
	entities.OrderStatusPending:   entities.OrderStatusPreparing,
	entities.OrderStatusPreparing: entities.OrderStatusOnTheWay,
	entities.OrderStatusOnTheWay:  entities.OrderStatusDelivered,
}

// etaMinutes counts from the order's creation time.
var etaMinutes = map[string]int{
	entities.OrderStatusPending:   45,
	entities.OrderStatusPreparing: 30,
	entities.OrderStatusOnTheWay:  15,
}

type (
	OrderService interface {
		GetOrders(ctx context.Context, date string) ([]domain.OrderResponse, error)
		CreateOrder(ctx context.Context, principal domain.Principal, req domain.CreateOrderRequest) (domain.OrderResponse, error)
		UpdateOrderStatus(ctx context.Context, principal domain.Principal, id string, status string) (domain.OrderResponse, error)
		GenerateAutoOrders(ctx context.Context, principal domain.Principal, date string) (domain.AutoOrderResponse, error)
		AutoOrderPreview(ctx context.Context, date string) (domain.AutoOrderPreviewResponse, error)
		CurrentOrder(ctx context.Context, customerID string) (*domain.CurrentOrderResponse, error)
		ClientProfile(ctx context.Context, customerID string) (domain.ClientProfileResponse, error)
		CreatePayment(ctx context.Context, principal domain.Principal, orderID string) (domain.PaymentResponse, error)
		HandlePaymentNotification(ctx context.Context, n domain.MidtransNotification) error
	}

	orderService struct {
		orderRepository    OrderRepository
		customerRepository customer.CustomerRepository
		gateway            midtrans.Gateway
		plans              domain.PlanInvalidator
		loc                *time.Location
		mealPrice          int64
		now                func() time.Time
		intn               func(n int) int
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	customerRepository customer.CustomerRepository,
	gateway midtrans.Gateway,
	plans domain.PlanInvalidator,
	loc *time.Location,
	mealPrice int64,
) OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &orderService{
		orderRepository:    orderRepository,
		customerRepository: customerRepository,
		gateway:            gateway,
		plans:              plans,
		loc:                loc,
		mealPrice:          mealPrice,
		now:                time.Now,
		intn:               rand.IntN,
	}
}

// EligibleOn reports whether a customer with pattern receives a meal on day,
// judged by the parity of the day of the month.
func EligibleOn(pattern string, day time.Time) bool {
	switch pattern {
	case entities.PatternEveryOtherDayEven:
		return day.Day()%2 == 0
	case entities.PatternEveryOtherDayOdd:
		return day.Day()%2 == 1
	default:
		return true
	}
}

// defaultDeliveryTime picks a time between 11:00 and 13:59.
func (s *orderService) defaultDeliveryTime() string {
	return fmt.Sprintf("%02d:%02d", 11+s.intn(3), s.intn(60))
}

func (s *orderService) toResponse(o entities.Order) domain.OrderResponse {
	res := domain.OrderResponse{
		ID:              o.ID.String(),
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID.String(),
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    o.DeliveryDate.In(s.loc).Format(domain.DateLayout),
		DeliveryTime:    o.DeliveryTime,
		Quantity:        o.Quantity,
		Calories:        o.Calories,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		PaymentMethod:   o.PaymentMethod,
		IsPrepaid:       o.IsPrepaid,
		IsAutoOrder:     o.IsAutoOrder,
		CreatedAt:       o.CreatedAt,
	}
	customerCalories := 0
	if o.Customer != nil {
		res.CustomerName = o.Customer.Name
		res.CustomerPhone = o.Customer.Phone
		customerCalories = o.Customer.Calories
	}
	res.CalorieGroup = domain.CalorieBand(domain.EffectiveCalories(o.Calories, customerCalories))
	return res
}

func (s *orderService) invalidate(ctx context.Context) {
	if s.plans != nil {
		s.plans.Invalidate(ctx)
	}
}

func (s *orderService) day(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return domain.StartOfDay(s.now(), s.loc), nil
	}
	return domain.ParseDay(date, s.loc)
}

// insert numbers and stores the order inside the caller's transaction.
func insert(ctx context.Context, repo OrderRepository, o *entities.Order) error {
	number, err := repo.NextOrderNumber(ctx)
	if err != nil {
		return err
	}
	o.OrderNumber = number
	return repo.Create(ctx, o)
}

func (s *orderService) GetOrders(ctx context.Context, date string) ([]domain.OrderResponse, error) {
	day, err := s.day(date)
	if err != nil {
		return nil, err
	}
	start, end := domain.DayRange(day)
	orders, err := s.orderRepository.GetByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res := make([]domain.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, s.toResponse(o))
	}
	return res, nil
}

func (s *orderService) CreateOrder(ctx context.Context, principal domain.Principal, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	customerID, err := domain.ParseID(req.CustomerID)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	day, err := domain.ParseDay(req.DeliveryDate, s.loc)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	if req.Quantity < 0 {
		return domain.OrderResponse{}, domain.ErrInvalidOrderQuantity
	}
	if req.Calories < 0 {
		return domain.OrderResponse{}, domain.InvalidArgument("calories must not be negative")
	}
	deliveryTime := strings.TrimSpace(req.DeliveryTime)
	if deliveryTime == "" {
		deliveryTime = s.defaultDeliveryTime()
	} else if !utils.IsClock(deliveryTime) {
		return domain.OrderResponse{}, domain.ErrInvalidDeliveryTime
	}

	c, err := s.customerRepository.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrCustomerNotFound
		}
		return domain.OrderResponse{}, err
	}

	o := entities.Order{
		CustomerID:      c.ID,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryDate:    day.UTC(),
		DeliveryTime:    deliveryTime,
		Quantity:        req.Quantity,
		Calories:        req.Calories,
		SpecialFeatures: req.SpecialFeatures,
		Status:          entities.OrderStatusPending,
		PaymentStatus:   entities.PaymentStatusUnpaid,
		PaymentMethod:   req.PaymentMethod,
		IsPrepaid:       req.IsPrepaid,
	}
	if o.DeliveryAddress == "" {
		o.DeliveryAddress = c.Address
	}
	if o.Quantity == 0 {
		o.Quantity = 1
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = DefaultPaymentMethod
	}
	if o.IsPrepaid {
		o.PaymentStatus = entities.PaymentStatusPaid
	}

	err = s.orderRepository.Transaction(ctx, func(tx *gorm.DB) error {
		return insert(ctx, s.orderRepository.WithTx(tx), &o)
	})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	log.Infof("order #%d created by %s", o.OrderNumber, principal.UserID)
	s.invalidate(ctx)
	o.Customer = c
	return s.toResponse(o), nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, principal domain.Principal, id string, status string) (domain.OrderResponse, error) {
	orderID, err := domain.ParseID(id)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	status = strings.ToUpper(strings.TrimSpace(status))
	if _, known := etaMinutes[status]; !known && status != entities.OrderStatusDelivered {
		return domain.OrderResponse{}, domain.ErrUnknownOrderStatus
	}

	o, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrOrderNotFound
		}
		return domain.OrderResponse{}, err
	}
	if nextStatus[o.Status] != status {
		return domain.OrderResponse{}, fmt.Errorf("%w: %s to %s", domain.ErrInvalidStatusChange, o.Status, status)
	}

	moved, err := s.orderRepository.UpdateStatus(ctx, o.ID, o.Status, status)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	if !moved {
		return domain.OrderResponse{}, fmt.Errorf("%w: order status changed concurrently", domain.ErrInvalidStatusChange)
	}

	log.Infof("order #%d %s -> %s by %s", o.OrderNumber, o.Status, status, principal.UserID)
	s.invalidate(ctx)
	o.Status = status
	return s.toResponse(*o), nil
}

// GenerateAutoOrders creates one order for every active customer whose pattern
// falls on the date and who has no order for it yet. The batch commits as a whole.
func (s *orderService) GenerateAutoOrders(ctx context.Context, principal domain.Principal, date string) (domain.AutoOrderResponse, error) {
	day, err := s.day(date)
	if err != nil {
		return domain.AutoOrderResponse{}, err
	}
	start, end := domain.DayRange(day)

	customers, err := s.customerRepository.GetActive(ctx)
	if err != nil {
		return domain.AutoOrderResponse{}, err
	}
	eligible := make([]entities.Customer, 0, len(customers))
	for _, c := range customers {
		if EligibleOn(c.OrderPattern, day) {
			eligible = append(eligible, c)
		}
	}

	created := make([]entities.Order, 0, len(eligible))
	err = s.orderRepository.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.orderRepository.WithTx(tx)
		if err := repo.LockCounter(ctx); err != nil {
			return err
		}
		ids, err := repo.GetCustomerIDsWithOrders(ctx, start, end)
		if err != nil {
			return err
		}
		ordered := make(map[uuid.UUID]struct{}, len(ids))
		for _, id := range ids {
			ordered[id] = struct{}{}
		}

		for _, c := range eligible {
			if _, ok := ordered[c.ID]; ok {
				continue
			}
			o := entities.Order{
				CustomerID:      c.ID,
				DeliveryAddress: c.Address,
				DeliveryDate:    start,
				DeliveryTime:    s.defaultDeliveryTime(),
				Quantity:        1,
				Calories:        domain.EffectiveCalories(0, c.Calories),
				SpecialFeatures: c.Preferences,
				Status:          entities.OrderStatusPending,
				PaymentStatus:   entities.PaymentStatusUnpaid,
				PaymentMethod:   DefaultPaymentMethod,
				IsAutoOrder:     true,
			}
			if err := insert(ctx, repo, &o); err != nil {
				return err
			}
			customerCopy := c
			o.Customer = &customerCopy
			created = append(created, o)
		}
		return nil
	})
	if err != nil {
		return domain.AutoOrderResponse{}, err
	}

	res := domain.AutoOrderResponse{
		ProcessedDate:   day.Format(domain.DateLayout),
		EligibleClients: len(eligible),
		CreatedOrders:   len(created),
		Orders:          make([]domain.OrderResponse, 0, len(created)),
	}
	for _, o := range created {
		res.Orders = append(res.Orders, s.toResponse(o))
	}

	log.Infof("auto orders for %s: %d of %d eligible created by %s", res.ProcessedDate, res.CreatedOrders, res.EligibleClients, principal.UserID)
	if len(created) > 0 {
		s.invalidate(ctx)
	}
	return res, nil
}

func (s *orderService) AutoOrderPreview(ctx context.Context, date string) (domain.AutoOrderPreviewResponse, error) {
	day, err := s.day(date)
	if err != nil {
		return domain.AutoOrderPreviewResponse{}, err
	}
	orders, err := s.GetOrders(ctx, day.Format(domain.DateLayout))
	if err != nil {
		return domain.AutoOrderPreviewResponse{}, err
	}

	next := day.AddDate(0, 0, 1)
	customers, err := s.customerRepository.GetActive(ctx)
	if err != nil {
		return domain.AutoOrderPreviewResponse{}, err
	}
	eligible := make([]domain.EligibleCustomer, 0, len(customers))
	for _, c := range customers {
		if EligibleOn(c.OrderPattern, next) {
			eligible = append(eligible, domain.EligibleCustomer{
				ID:           c.ID.String(),
				Name:         c.Name,
				Phone:        c.Phone,
				OrderPattern: c.OrderPattern,
			})
		}
	}

	return domain.AutoOrderPreviewResponse{
		Date:            day.Format(domain.DateLayout),
		OrdersForDate:   orders,
		NextDate:        next.Format(domain.DateLayout),
		NextDayEligible: eligible,
	}, nil
}

// CurrentOrder returns nil when the customer has nothing undelivered.
func (s *orderService) CurrentOrder(ctx context.Context, customerID string) (*domain.CurrentOrderResponse, error) {
	id, err := domain.ParseID(customerID)
	if err != nil {
		return nil, err
	}
	o, err := s.orderRepository.GetLatestOpenForCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	name := o.SpecialFeatures
	if name == "" {
		name = defaultOrderItemName
	}
	return &domain.CurrentOrderResponse{
		ID:                o.ID.String(),
		OrderNumber:       o.OrderNumber,
		Status:            o.Status,
		EstimatedDelivery: o.CreatedAt.Add(time.Duration(etaMinutes[o.Status]) * time.Minute),
		Items: []domain.CurrentOrderItem{{
			Name:     name,
			Calories: o.Calories,
			Quantity: o.Quantity,
		}},
	}, nil
}

// ClientProfile sums calories × quantity over the customer's deliveries for
// today. Orders without a calorie snapshot count the customer's target.
func (s *orderService) ClientProfile(ctx context.Context, customerID string) (domain.ClientProfileResponse, error) {
	id, err := domain.ParseID(customerID)
	if err != nil {
		return domain.ClientProfileResponse{}, err
	}
	c, err := s.customerRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ClientProfileResponse{}, domain.ErrCustomerNotFound
		}
		return domain.ClientProfileResponse{}, err
	}

	start, end := domain.DayRange(domain.StartOfDay(s.now(), s.loc))
	orders, err := s.orderRepository.GetForCustomerOnDay(ctx, c.ID, start, end)
	if err != nil {
		return domain.ClientProfileResponse{}, err
	}
	consumed := 0
	for _, o := range orders {
		quantity := o.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		consumed += domain.EffectiveCalories(o.Calories, c.Calories) * quantity
	}

	daily := domain.EffectiveCalories(0, c.Calories)
	return domain.ClientProfileResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		Phone:            c.Phone,
		Calories:         c.Calories,
		CalorieGroup:     domain.CalorieBand(daily),
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		ConsumedCalories: consumed,
		Plan: domain.ClientPlan{
			Name:          domain.PlanName,
			StartDate:     c.CreatedAt,
			EndDate:       c.CreatedAt.AddDate(0, 1, 0),
			DailyCalories: daily,
		},
	}, nil
}

func (s *orderService) CreatePayment(ctx context.Context, principal domain.Principal, orderID string) (domain.PaymentResponse, error) {
	id, err := domain.ParseID(orderID)
	if err != nil {
		return domain.PaymentResponse{}, err
	}
	if s.gateway == nil {
		return domain.PaymentResponse{}, domain.ErrPaymentGatewayDisabled
	}
	o, err := s.orderRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PaymentResponse{}, domain.ErrOrderNotFound
		}
		return domain.PaymentResponse{}, err
	}
	if o.PaymentStatus == entities.PaymentStatusPaid {
		return domain.PaymentResponse{}, domain.ErrOrderAlreadyPaid
	}

	reference := fmt.Sprintf("ORDER-%d-%d", o.OrderNumber, s.now().Unix())
	amount := s.mealPrice * int64(o.Quantity)
	payer := domain.PaymentCustomer{}
	if o.Customer != nil {
		payer = domain.PaymentCustomer{Name: o.Customer.Name, Phone: o.Customer.Phone}
	}

	token, redirectURL, err := s.gateway.CreateTransaction(reference, amount, payer)
	if err != nil {
		return domain.PaymentResponse{}, err
	}
	err = s.orderRepository.Update(ctx, o.ID, map[string]any{
		"payment_reference": reference,
		"payment_status":    entities.PaymentStatusPending,
		"payment_method":    PaymentMethodMidtrans,
	})
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	log.Infof("payment %s for order #%d created by %s", reference, o.OrderNumber, principal.UserID)
	return domain.PaymentResponse{
		OrderID:     o.ID.String(),
		Reference:   reference,
		Token:       token,
		RedirectURL: redirectURL,
		GrossAmount: amount,
	}, nil
}

func paymentStatusFor(n domain.MidtransNotification) string {
	switch n.TransactionStatus {
	case "settlement":
		return entities.PaymentStatusPaid
	case "capture":
		if n.FraudStatus == "" || n.FraudStatus == "accept" {
			return entities.PaymentStatusPaid
		}
		return entities.PaymentStatusPending
	case "pending":
		return entities.PaymentStatusPending
	case "deny", "cancel", "expire", "failure":
		return entities.PaymentStatusFailed
	}
	return ""
}

func (s *orderService) HandlePaymentNotification(ctx context.Context, n domain.MidtransNotification) error {
	if s.gateway == nil || !s.gateway.VerifySignature(n) {
		return domain.ErrInvalidSignature
	}
	o, err := s.orderRepository.GetByPaymentReference(ctx, n.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}

	status := paymentStatusFor(n)
	if status == "" || o.PaymentStatus == entities.PaymentStatusPaid || status == o.PaymentStatus {
		return nil
	}
	fields := map[string]any{"payment_status": status}
	if status == entities.PaymentStatusPaid {
		fields["is_prepaid"] = true
	}
	if err := s.orderRepository.Update(ctx, o.ID, fields); err != nil {
		return err
	}

	log.Infof("order #%d payment %s (%s)", o.OrderNumber, status, n.TransactionStatus)
	return nil
}
