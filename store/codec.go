package store

import (
	"encoding/json"
	"fmt"

	"github.com/vapeonx/storefront/models"
)

// EncodeCart serializes a cart. A nil item list is written as [].
func EncodeCart(cart models.Cart) (string, error) {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	b, err := json.Marshal(cart)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// DecodeCart parses a value written by EncodeCart.
func DecodeCart(raw string) (models.Cart, error) {
	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return models.Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

// EncodeOrders serializes the order collection as a JSON array.
func EncodeOrders(orders []models.Order) (string, error) {
	if orders == nil {
		orders = []models.Order{}
	}
	b, err := json.Marshal(orders)
	if err != nil {
		return "", fmt.Errorf("encode orders: %w", err)
	}
	return string(b), nil
}

// DecodeOrders parses a value written by EncodeOrders.
func DecodeOrders(raw string) ([]models.Order, error) {
	var orders []models.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// EncodeAddresses serializes the saved address book.
func EncodeAddresses(addresses []models.ShippingAddress) (string, error) {
	if addresses == nil {
		addresses = []models.ShippingAddress{}
	}
	b, err := json.Marshal(addresses)
	if err != nil {
		return "", fmt.Errorf("encode addresses: %w", err)
	}
	return string(b), nil
}

// DecodeAddresses parses a value written by EncodeAddresses.
func DecodeAddresses(raw string) ([]models.ShippingAddress, error) {
	var addresses []models.ShippingAddress
	if err := json.Unmarshal([]byte(raw), &addresses); err != nil {
		return nil, fmt.Errorf("decode addresses: %w", err)
	}
	if addresses == nil {
		addresses = []models.ShippingAddress{}
	}
	return addresses, nil
}
