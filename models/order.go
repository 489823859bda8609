package models

import "strings"

// Order statuses with special meaning. Any other string is kept verbatim.
const (
	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancelled"
)

// OrderDateLayout is ISO-8601 in UTC with millisecond precision.
const OrderDateLayout = "2006-01-02T15:04:05.000Z07:00"

// PaymentMethod is the payment option chosen at checkout
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentBankTransfer   PaymentMethod = "bank"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentBankTransfer
}

// ShippingDetails is the customer and delivery information captured at checkout
type ShippingDetails struct {
	FullName      string        `json:"fullName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	PostalCode    string        `json:"postalCode"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// Order represents a placed order
type Order struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	OrderDate   string          `json:"orderDate"`
	TotalAmount float64         `json:"totalAmount"`
	Items       []CartItem      `json:"items"`
	Shipping    ShippingDetails `json:"shipping"`
}

// IsCancelled compares the status case-insensitively.
func (o Order) IsCancelled() bool {
	return strings.EqualFold(o.Status, OrderStatusCancelled)
}

// OrderCreateInput holds data for placing an order
type OrderCreateInput struct {
	Items       []CartItem      `json:"items"`
	Shipping    ShippingDetails `json:"shipping"`
	Status      string          `json:"status,omitempty"`
	OrderDate   string          `json:"orderDate,omitempty"`
	TotalAmount float64         `json:"totalAmount,omitempty"`
}

// OrderIDInput addresses a single order
type OrderIDInput struct {
	OrderID string `json:"orderId"`
}

// OrderResponse is the envelope returned by order mutations
type OrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

// OrdersResponse lists the orders of the session
type OrdersResponse struct {
	Orders []Order `json:"orders"`
}
