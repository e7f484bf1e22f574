package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGetOrders       = "orders retrieved successfully"
	MessageSuccessCreateOrder     = "order created successfully"
	MessageSuccessUpdateStatus    = "order status updated successfully"
	MessageSuccessAutoOrders      = "auto orders created successfully"
	MessageSuccessAutoOrderStats  = "auto order statistics retrieved successfully"
	MessageSuccessGetCurrentOrder = "current order retrieved successfully"
	MessageSuccessCreatePayment   = "payment created successfully"

	MessageFailedGetOrders       = "failed to retrieve orders"
	MessageFailedCreateOrder     = "failed to create order"
	MessageFailedUpdateStatus    = "failed to update order status"
	MessageFailedAutoOrders      = "failed to create auto orders"
	MessageFailedAutoOrderStats  = "failed to retrieve auto order statistics"
	MessageFailedGetCurrentOrder = "failed to retrieve current order"
	MessageFailedCreatePayment   = "failed to create payment"
	MessageFailedNotification    = "failed to process payment notification"

	ErrOrderNotFound          = fmt.Errorf("%w: order not found", ErrNotFound)
	ErrInvalidStatusChange    = fmt.Errorf("%w: status can only move one step forward", ErrInvalidArgument)
	ErrUnknownOrderStatus     = fmt.Errorf("%w: unknown order status", ErrInvalidArgument)
	ErrInvalidOrderQuantity   = fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	ErrInvalidDeliveryTime    = fmt.Errorf("%w: delivery time must be HH:MM", ErrInvalidArgument)
	ErrOrderAlreadyPaid       = fmt.Errorf("%w: order is already paid", ErrConflict)
	ErrInvalidSignature       = fmt.Errorf("%w: invalid notification signature", ErrInvalidArgument)
	ErrPaymentGatewayDisabled = fmt.Errorf("%w: payment gateway is not configured", ErrInvalidArgument)
)

type (
	CreateOrderRequest struct {
		CustomerID      string `json:"customer_id" validate:"required,uuid"`
		DeliveryDate    string `json:"delivery_date" validate:"required"`
		DeliveryTime    string `json:"delivery_time" validate:"omitempty,len=5"`
		DeliveryAddress string `json:"delivery_address"`
		Quantity        int    `json:"quantity" validate:"omitempty,min=1"`
		Calories        int    `json:"calories" validate:"omitempty,min=0"`
		SpecialFeatures string `json:"special_features"`
		PaymentMethod   string `json:"payment_method" validate:"omitempty,oneof=CASH CARD TRANSFER"`
		IsPrepaid       bool   `json:"is_prepaid"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=PENDING PREPARING ON_THE_WAY DELIVERED"`
	}

	AutoOrderRequest struct {
		TargetDate string `json:"target_date"`
	}

	OrderResponse struct {
		ID              string    `json:"id"`
		OrderNumber     int64     `json:"order_number"`
		CustomerID      string    `json:"customer_id"`
		CustomerName    string    `json:"customer_name,omitempty"`
		CustomerPhone   string    `json:"customer_phone,omitempty"`
		DeliveryAddress string    `json:"delivery_address"`
		DeliveryDate    string    `json:"delivery_date"`
		DeliveryTime    string    `json:"delivery_time"`
		Quantity        int       `json:"quantity"`
		Calories        int       `json:"calories"`
		CalorieGroup    string    `json:"calorie_group"`
		Status          string    `json:"status"`
		PaymentStatus   string    `json:"payment_status"`
		PaymentMethod   string    `json:"payment_method"`
		IsPrepaid       bool      `json:"is_prepaid"`
		IsAutoOrder     bool      `json:"is_auto_order"`
		CreatedAt       time.Time `json:"created_at"`
	}

	AutoOrderResponse struct {
		ProcessedDate   string          `json:"processed_date"`
		EligibleClients int             `json:"eligible_clients"`
		CreatedOrders   int             `json:"created_orders"`
		Orders          []OrderResponse `json:"orders"`
	}

	EligibleCustomer struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		OrderPattern string `json:"order_pattern"`
	}

	AutoOrderPreviewResponse struct {
		Date            string             `json:"date"`
		OrdersForDate   []OrderResponse    `json:"orders_for_date"`
		NextDate        string             `json:"next_date"`
		NextDayEligible []EligibleCustomer `json:"next_day_eligible"`
	}

	CurrentOrderItem struct {
		Name     string `json:"name"`
		Calories int    `json:"calories"`
		Quantity int    `json:"quantity"`
	}

	CurrentOrderResponse struct {
		ID                string             `json:"id"`
		OrderNumber       int64              `json:"order_number"`
		Status            string             `json:"status"`
		EstimatedDelivery time.Time          `json:"estimated_delivery"`
		Items             []CurrentOrderItem `json:"items"`
	}

	PaymentResponse struct {
		OrderID     string `json:"order_id"`
		Reference   string `json:"reference"`
		Token       string `json:"token"`
		RedirectURL string `json:"redirect_url"`
		GrossAmount int64  `json:"gross_amount"`
	}

	PaymentCustomer struct {
		Name  string
		Phone string
	}

	MidtransNotification struct {
		OrderID           string `json:"order_id"`
		StatusCode        string `json:"status_code"`
		GrossAmount       string `json:"gross_amount"`
		SignatureKey      string `json:"signature_key"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
		PaymentType       string `json:"payment_type"`
	}
)
