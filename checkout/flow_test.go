package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vapeonx/storefront/client"
	"github.com/vapeonx/storefront/models"
)

type fakeOrders struct {
	result   client.Result
	calls    int
	items    []models.CartItem
	shipping models.ShippingDetails
}

func (f *fakeOrders) CreateOrder(_ context.Context, items []models.CartItem, shipping models.ShippingDetails) client.Result {
	f.calls++
	f.items = items
	f.shipping = shipping
	return f.result
}

type fakeCart struct {
	items   []models.CartItem
	cleared int
	clearOK bool
}

func (f *fakeCart) Items() []models.CartItem { return f.items }

func (f *fakeCart) ClearCart(context.Context) bool {
	f.cleared++
	return f.clearOK
}

func flowDetails() models.ShippingDetails {
	return models.ShippingDetails{
		FullName:   "  Juan Dela Cruz ",
		Email:      "juan@example.com",
		Phone:      "09171234567",
		Address:    "123 Rizal St",
		City:       "San Jose del Monte",
		PostalCode: "3023",
	}
}

func TestFlow_Success(t *testing.T) {
	orders := &fakeOrders{result: client.Result{Success: true, OrderID: "ord-000042"}}
	cart := &fakeCart{items: []models.CartItem{{ID: "pod", Name: "Pod", Price: 100, Quantity: 2}}, clearOK: true}
	flow := &Flow{Orders: orders, Cart: cart}

	out := flow.Submit(context.Background(), flowDetails())

	assert.True(t, out.Success)
	assert.Equal(t, "ord-000042", out.OrderID)
	assert.Equal(t, MsgOrderPlaced, out.Message)
	assert.Equal(t, 1, cart.cleared)
	require.Len(t, orders.items, 1)
	assert.Equal(t, "Juan Dela Cruz", orders.shipping.FullName)
	assert.Equal(t, models.PaymentCashOnDelivery, orders.shipping.PaymentMethod)
}

func TestFlow_InvalidFieldsSkipOrder(t *testing.T) {
	orders := &fakeOrders{}
	cart := &fakeCart{}
	flow := &Flow{Orders: orders, Cart: cart}

	details := flowDetails()
	details.Email = "juan"
	details.City = "   "

	out := flow.Submit(context.Background(), details)

	assert.False(t, out.Success)
	assert.Equal(t, MsgCheckFields, out.Message)
	assert.Equal(t, FieldErrors{"email": "Email is invalid", "city": "City is required"}, out.Fields)
	assert.Zero(t, orders.calls)
	assert.Zero(t, cart.cleared)
}

func TestFlow_OrderFailureKeepsCart(t *testing.T) {
	orders := &fakeOrders{result: client.Result{Success: false, Message: "Cart is empty"}}
	cart := &fakeCart{clearOK: true}
	flow := &Flow{Orders: orders, Cart: cart}

	out := flow.Submit(context.Background(), flowDetails())

	assert.False(t, out.Success)
	assert.Equal(t, "Cart is empty", out.Message)
	assert.Empty(t, out.Fields)
	assert.Zero(t, cart.cleared)
}

func TestFlow_FailureWithoutMessage(t *testing.T) {
	flow := &Flow{Orders: &fakeOrders{}, Cart: &fakeCart{}}

	out := flow.Submit(context.Background(), flowDetails())
	assert.Equal(t, MsgUnexpectedError, out.Message)
}

func TestFlow_ClearFailureStillSucceeds(t *testing.T) {
	orders := &fakeOrders{result: client.Result{Success: true, OrderID: "ord-000001"}}
	cart := &fakeCart{clearOK: false}
	flow := &Flow{Orders: orders, Cart: cart}

	out := flow.Submit(context.Background(), flowDetails())
	assert.True(t, out.Success)
	assert.Equal(t, 1, cart.cleared)
}

func TestFlow_Unwired(t *testing.T) {
	out := (&Flow{}).Submit(context.Background(), flowDetails())
	assert.False(t, out.Success)
	assert.Equal(t, MsgUnexpectedError, out.Message)
}
