package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vapeonx/storefront/models"
)

// Messages reported in Result.
const (
	MsgCartEmpty      = "Cart is empty"
	MsgOrderPlaced    = "Order placed successfully"
	MsgOrderCancelled = "Order cancelled successfully"
	MsgOrderDeleted   = "Order deleted successfully"
)

// OrderClient is the order facade. Mutations are applied to the mirror
// optimistically and mark it stale; only FetchOrders makes it authoritative.
type OrderClient struct {
	api
	now func() time.Time

	mu     sync.RWMutex
	orders []models.Order
	stale  bool
}

// NewOrderClient creates an order facade for the API at baseURL.
func NewOrderClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *OrderClient {
	return &OrderClient{
		api:    newAPI(baseURL, httpClient, logger),
		now:    time.Now,
		orders: []models.Order{},
		stale:  true,
	}
}

// FetchOrders replaces the mirror with the server history.
func (o *OrderClient) FetchOrders(ctx context.Context) bool {
	var res models.OrdersResponse
	if err := o.call(ctx, http.MethodGet, "/orders", nil, &res); err != nil {
		o.logger.Warn("fetch orders failed", zap.Error(err))
		o.mu.Lock()
		o.stale = true
		o.mu.Unlock()
		return false
	}
	if res.Orders == nil {
		res.Orders = []models.Order{}
	}

	o.mu.Lock()
	o.orders = res.Orders
	o.stale = false
	o.mu.Unlock()
	return true
}

// CreateOrder places an order for items. The total is computed here and the
// local copy is appended to the mirror.
func (o *OrderClient) CreateOrder(ctx context.Context, items []models.CartItem, shipping models.ShippingDetails) Result {
	if len(items) == 0 {
		return Result{Success: false, Message: MsgCartEmpty}
	}

	input := models.OrderCreateInput{
		Items:       append([]models.CartItem(nil), items...),
		Shipping:    shipping,
		Status:      models.OrderStatusPending,
		OrderDate:   o.now().UTC().Format(models.OrderDateLayout),
		TotalAmount: models.Subtotal(items),
	}

	var res Result
	if err := o.call(ctx, http.MethodPost, "/orders/create", input, &res); err != nil {
		o.logger.Warn("create order failed", zap.Error(err))
		return Result{Success: false, Message: messageOf(err, "Failed to place order")}
	}

	o.mu.Lock()
	o.orders = append(o.orders, models.Order{
		ID:          res.OrderID,
		Status:      input.Status,
		OrderDate:   input.OrderDate,
		TotalAmount: input.TotalAmount,
		Items:       input.Items,
		Shipping:    input.Shipping,
	})
	o.stale = true
	o.mu.Unlock()

	return Result{Success: true, Message: MsgOrderPlaced, OrderID: res.OrderID}
}

// CancelOrder cancels orderID and marks it cancelled in the mirror.
func (o *OrderClient) CancelOrder(ctx context.Context, orderID string) Result {
	if err := o.call(ctx, http.MethodPost, "/orders/cancel", models.OrderIDInput{OrderID: orderID}, nil); err != nil {
		o.logger.Warn("cancel order failed", zap.String("order_id", orderID), zap.Error(err))
		return Result{Success: false, Message: messageOf(err, "Failed to cancel order")}
	}

	o.mu.Lock()
	for i := range o.orders {
		if o.orders[i].ID == orderID {
			o.orders[i].Status = models.OrderStatusCancelled
		}
	}
	o.stale = true
	o.mu.Unlock()

	return Result{Success: true, Message: MsgOrderCancelled}
}

// DeleteOrder removes orderID and drops it from the mirror.
func (o *OrderClient) DeleteOrder(ctx context.Context, orderID string) Result {
	if err := o.call(ctx, http.MethodPost, "/orders/delete", models.OrderIDInput{OrderID: orderID}, nil); err != nil {
		o.logger.Warn("delete order failed", zap.String("order_id", orderID), zap.Error(err))
		return Result{Success: false, Message: messageOf(err, "Failed to delete order")}
	}

	o.mu.Lock()
	kept := o.orders[:0]
	for _, order := range o.orders {
		if order.ID != orderID {
			kept = append(kept, order)
		}
	}
	o.orders = kept
	o.stale = true
	o.mu.Unlock()

	return Result{Success: true, Message: MsgOrderDeleted}
}

// Orders returns a copy of the mirror.
func (o *OrderClient) Orders() []models.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]models.Order{}, o.orders...)
}

// OrderCount counts the orders that are not cancelled.
func (o *OrderClient) OrderCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	n := 0
	for _, order := range o.orders {
		if !order.IsCancelled() {
			n++
		}
	}
	return n
}

// Stale reports whether the mirror may differ from the server.
func (o *OrderClient) Stale() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.stale
}
