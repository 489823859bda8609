package models

import (
	"time"
)

// ShippingAddress is a saved set of shipping details kept in the session
type ShippingAddress struct {
	ID        string          `json:"id"`
	Label     string          `json:"label,omitempty"`
	Details   ShippingDetails `json:"details"`
	IsDefault bool            `json:"isDefault"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ShippingAddressInput is used for creating/updating shipping addresses
type ShippingAddressInput struct {
	Label     string          `json:"label"`
	Details   ShippingDetails `json:"details"`
	IsDefault bool            `json:"isDefault"`
}

// CheckoutInput selects either inline shipping details or a saved address
type CheckoutInput struct {
	Shipping          *ShippingDetails `json:"shipping"`
	ShippingAddressID string           `json:"shippingAddressId"`
}
