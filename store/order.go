package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vapeonx/storefront/models"
	"github.com/vapeonx/storefront/session"
)

const (
	// OrdersKey is the session key (and cookie name) holding the order history.
	OrdersKey = "orders"
	// OrdersTTL is how long the order history is kept.
	OrdersTTL = 365 * 24 * time.Hour
)

// OrderStore implements the order history operations over a session.Store.
type OrderStore struct {
	logger             *zap.Logger
	now                func() time.Time
	cancelBeforeDelete bool
}

// OrderOption configures an OrderStore.
type OrderOption func(*OrderStore)

// WithClock replaces the time source used for ids and order dates.
func WithClock(now func() time.Time) OrderOption {
	return func(s *OrderStore) {
		s.now = now
	}
}

// WithCancelBeforeDelete rejects deletion of orders that are not cancelled.
func WithCancelBeforeDelete(required bool) OrderOption {
	return func(s *OrderStore) {
		s.cancelBeforeDelete = required
	}
}

// NewOrderStore creates an order store. A nil logger discards output.
func NewOrderStore(logger *zap.Logger, opts ...OrderOption) *OrderStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &OrderStore{logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the stored orders in creation order. A missing or unreadable
// value yields an empty list.
func (s *OrderStore) List(ctx context.Context, kv session.Store) ([]models.Order, error) {
	raw, ok, err := kv.Get(ctx, OrdersKey)
	if errors.Is(err, session.ErrCorruptValue) {
		s.logger.Warn("discarding unreadable orders", zap.Error(err))
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, newError("orders.list", "", "", err)
	}
	if !ok {
		return []models.Order{}, nil
	}

	orders, err := DecodeOrders(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable orders", zap.Error(err))
		return []models.Order{}, nil
	}
	return orders, nil
}

// Get returns the order with the given id.
func (s *OrderStore) Get(ctx context.Context, kv session.Store, orderID string) (*models.Order, error) {
	const op = "orders.get"
	if orderID == "" {
		return nil, newError(op, "", MsgOrderIDRequired, ErrMissingField)
	}

	orders, err := s.List(ctx, kv)
	if err != nil {
		return nil, err
	}
	idx := indexOrder(orders, orderID)
	if idx < 0 {
		return nil, newError(op, orderID, MsgOrderNotFound, ErrOrderNotFound)
	}
	return &orders[idx], nil
}

// Create appends a new order. Status defaults to pending, the order date to
// now and the total to 0.
func (s *OrderStore) Create(ctx context.Context, kv session.Store, input models.OrderCreateInput) (*models.Order, error) {
	const op = "orders.create"
	if len(input.Items) == 0 {
		return nil, newError(op, "", MsgNoItems, ErrEmptyCart)
	}

	orders, err := s.List(ctx, kv)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := models.Order{
		ID:          nextOrderID(orders, now),
		Status:      input.Status,
		OrderDate:   input.OrderDate,
		TotalAmount: input.TotalAmount,
		Items:       append([]models.CartItem(nil), input.Items...),
		Shipping:    input.Shipping,
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.OrderDate == "" {
		order.OrderDate = now.UTC().Format(models.OrderDateLayout)
	}

	orders = append(orders, order)
	if err := s.save(ctx, kv, op, orders); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.Float64("total_amount", order.TotalAmount))
	return &order, nil
}

// Cancel moves a pending order to cancelled. Cancelling an order that is
// already cancelled succeeds and leaves it cancelled.
func (s *OrderStore) Cancel(ctx context.Context, kv session.Store, orderID string) (*models.Order, error) {
	const op = "orders.cancel"
	if orderID == "" {
		return nil, newError(op, "", MsgOrderIDRequired, ErrMissingField)
	}

	orders, err := s.List(ctx, kv)
	if err != nil {
		return nil, err
	}
	idx := indexOrder(orders, orderID)
	if idx < 0 {
		return nil, newError(op, orderID, MsgOrderNotFound, ErrOrderNotFound)
	}

	order := &orders[idx]
	if !strings.EqualFold(order.Status, models.OrderStatusPending) && !order.IsCancelled() {
		return nil, newError(op, orderID, MsgOnlyPendingCancel,
			fmt.Errorf("%w: status %q", ErrInvalidInput, order.Status))
	}
	order.Status = models.OrderStatusCancelled

	if err := s.save(ctx, kv, op, orders); err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled", zap.String("order_id", orderID))
	return order, nil
}

// Delete removes an order whatever its status, unless the store was built
// with WithCancelBeforeDelete.
func (s *OrderStore) Delete(ctx context.Context, kv session.Store, orderID string) error {
	const op = "orders.delete"
	if orderID == "" {
		return newError(op, "", MsgOrderIDRequired, ErrMissingField)
	}

	orders, err := s.List(ctx, kv)
	if err != nil {
		return err
	}
	idx := indexOrder(orders, orderID)
	if idx < 0 {
		return newError(op, orderID, MsgOrderNotFound, ErrOrderNotFound)
	}
	if s.cancelBeforeDelete && !orders[idx].IsCancelled() {
		return newError(op, orderID, MsgCancelBeforeDelete,
			fmt.Errorf("%w: status %q", ErrInvalidInput, orders[idx].Status))
	}

	orders = append(orders[:idx], orders[idx+1:]...)
	if err := s.save(ctx, kv, op, orders); err != nil {
		return err
	}

	s.logger.Info("order deleted", zap.String("order_id", orderID))
	return nil
}

func (s *OrderStore) save(ctx context.Context, kv session.Store, op string, orders []models.Order) error {
	raw, err := EncodeOrders(orders)
	if err != nil {
		return newError(op, "", "", err)
	}
	if err := kv.Set(ctx, OrdersKey, raw, OrdersTTL); err != nil {
		return newError(op, "", "", err)
	}
	return nil
}

// nextOrderID formats "ord-" and the last six digits of the epoch
// millisecond reading, moving the reading forward until the id is unused.
func nextOrderID(orders []models.Order, now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := fmt.Sprintf("ord-%06d", ms%1_000_000)
		if indexOrder(orders, id) < 0 {
			return id
		}
		ms++
	}
}

func indexOrder(orders []models.Order, id string) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
