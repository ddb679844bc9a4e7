package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type ShippingMethod string

const (
	ShippingMethodStandard ShippingMethod = "standard"
	ShippingMethodExpress  ShippingMethod = "express"
)

type Address struct {
	FullName     string `json:"full_name" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Country      string `json:"country" validate:"required"`
	Phone        string `json:"phone,omitempty"`
}

// OrderItem is a denormalized snapshot of the product at order time.
type OrderItem struct {
	ID                   uuid.UUID       `json:"id"`
	OrderID              uuid.UUID       `json:"order_id"`
	ProductID            uuid.UUID       `json:"product_id"`
	ProductName          string          `json:"product_name"`
	ProductSKU           string          `json:"product_sku"`
	Quantity             int             `json:"quantity"`
	UnitPrice            float64         `json:"unit_price"`
	TotalPrice           float64         `json:"total_price"`
	CustomizationDetails json.RawMessage `json:"customization_details,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

type Order struct {
	ID              uuid.UUID      `json:"id"`
	OrderNumber     string         `json:"order_number"`
	UserID          *uuid.UUID     `json:"user_id,omitempty"`
	GuestEmail      string         `json:"guest_email,omitempty"`
	GuestName       string         `json:"guest_name,omitempty"`
	GuestPhone      string         `json:"guest_phone,omitempty"`
	Status          OrderStatus    `json:"status"`
	PaymentStatus   PaymentStatus  `json:"payment_status"`
	PaymentMethod   string         `json:"payment_method"`
	PaymentID       string         `json:"payment_id,omitempty"`
	Subtotal        float64        `json:"subtotal"`
	DiscountAmount  float64        `json:"discount_amount"`
	DiscountCode    string         `json:"discount_code,omitempty"`
	ShippingCost    float64        `json:"shipping_cost"`
	TaxAmount       float64        `json:"tax_amount"`
	TotalAmount     float64        `json:"total_amount"`
	ShippingAddress *Address       `json:"shipping_address"`
	BillingAddress  *Address       `json:"billing_address"`
	ShippingMethod  ShippingMethod `json:"shipping_method"`
	TrackingNumber  string         `json:"tracking_number,omitempty"`
	DeliveredAt     *time.Time     `json:"delivered_at,omitempty"`
	Items           []OrderItem    `json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type OrderItemRequest struct {
	ProductID            uuid.UUID       `json:"product_id" validate:"required"`
	Quantity             int             `json:"quantity" validate:"required,min=1"`
	CustomizationDetails json.RawMessage `json:"customization_details,omitempty"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress Address            `json:"shipping_address" validate:"required"`
	BillingAddress  *Address           `json:"billing_address,omitempty"`
	ShippingMethod  ShippingMethod     `json:"shipping_method" validate:"required,oneof=standard express"`
	PaymentMethod   string             `json:"payment_method" validate:"required"`
	DiscountCode    string             `json:"discount_code,omitempty"`
	GuestEmail      string             `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestName       string             `json:"guest_name,omitempty"`
	GuestPhone      string             `json:"guest_phone,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status         OrderStatus `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
}
