package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// LineTotal returns price × quantity. A price that is negative, NaN or
// infinite counts as 0, as does a negative quantity.
func LineTotal(price float64, quantity int) decimal.Decimal {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 || quantity < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// Subtotal sums the line totals of items without rounding.
func Subtotal(items []CartItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item.Price, item.Quantity))
	}
	f, _ := total.Float64()
	return f
}

// ItemCount sums the quantities of items.
func ItemCount(items []CartItem) int {
	n := 0
	for _, item := range items {
		if item.Quantity > 0 {
			n += item.Quantity
		}
	}
	return n
}
