package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/vapeonx/storefront/client"
	"github.com/vapeonx/storefront/models"
)

// OrderPlacer places orders. *client.OrderClient implements it.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, items []models.CartItem, shipping models.ShippingDetails) client.Result
}

// CartSource supplies the lines to order and is emptied after a successful
// order. *client.CartClient implements it.
type CartSource interface {
	Items() []models.CartItem
	ClearCart(ctx context.Context) bool
}

// Outcome is what the checkout form shows after a submit. Fields carries
// per-field messages; Message is the single form-level message.
type Outcome struct {
	Success bool
	OrderID string
	Message string
	Fields  FieldErrors
}

// Flow validates the shipping form, places the order and empties the cart.
type Flow struct {
	Orders OrderPlacer
	Cart   CartSource
	Logger *zap.Logger
}

// Submit runs a checkout. The cart is cleared only once the order has been
// placed.
func (f *Flow) Submit(ctx context.Context, details models.ShippingDetails) Outcome {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if fields := Validate(details); len(fields) > 0 {
		return Outcome{Message: MsgCheckFields, Fields: fields}
	}
	if f.Orders == nil || f.Cart == nil {
		logger.Error("checkout flow is not wired")
		return Outcome{Message: MsgUnexpectedError}
	}

	res := f.Orders.CreateOrder(ctx, f.Cart.Items(), Normalize(details))
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = MsgUnexpectedError
		}
		return Outcome{Message: msg}
	}

	if !f.Cart.ClearCart(ctx) {
		logger.Warn("cart not cleared after checkout", zap.String("order_id", res.OrderID))
	}

	logger.Info("checkout completed", zap.String("order_id", res.OrderID))
	return Outcome{Success: true, OrderID: res.OrderID, Message: MsgOrderPlaced}
}
