package models

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []CartItem
		want  float64
	}{
		{"empty", nil, 0},
		{"single line", []CartItem{{Name: "Pod", Price: 100, Quantity: 2}}, 200},
		{"decimal prices", []CartItem{
			{Name: "Geek Bar", Price: 449.99, Quantity: 3},
			{Name: "Instabar", Price: 549.99, Quantity: 1},
		}, 1899.96},
		{"sub-cent prices are not rounded", []CartItem{{Price: 0.125, Quantity: 1}, {Price: 0.001, Quantity: 1}}, 0.126},
		{"negative price counts as zero", []CartItem{{Price: -5, Quantity: 2}, {Price: 10, Quantity: 1}}, 10},
		{"NaN price counts as zero", []CartItem{{Price: math.NaN(), Quantity: 2}}, 0},
		{"infinite price counts as zero", []CartItem{{Price: math.Inf(1), Quantity: 2}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtotal(tt.items))
		})
	}
}

func TestItemCount(t *testing.T) {
	items := []CartItem{{Quantity: 2}, {Quantity: 3}, {Quantity: -1}}
	assert.Equal(t, 5, ItemCount(items))
	assert.Equal(t, 0, ItemCount(nil))
}

func TestSubtotal_Idempotent(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("repeated calls agree", prop.ForAll(
		func(prices []float64, quantity int) bool {
			items := make([]CartItem, 0, len(prices))
			for _, p := range prices {
				items = append(items, CartItem{Price: p, Quantity: quantity})
			}
			return Subtotal(items) == Subtotal(items)
		},
		gen.SliceOf(gen.Float64Range(0, 10000)),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

func TestCartItem_Key(t *testing.T) {
	assert.Equal(t, "mm-1", CartItem{ID: "mm-1", Name: "Pod"}.Key())
	assert.Equal(t, "Pod", CartItem{Name: "Pod"}.Key())
	assert.True(t, CartItem{Name: "Pod"}.Matches("Pod"))
	assert.False(t, CartItem{ID: "mm-1", Name: "Pod"}.Matches("Pod"))
	assert.False(t, CartItem{}.Matches(""))
}

func TestOrder_IsCancelled(t *testing.T) {
	assert.True(t, Order{Status: "Cancelled"}.IsCancelled())
	assert.False(t, Order{Status: OrderStatusPending}.IsCancelled())
}
