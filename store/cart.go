package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vapeonx/storefront/models"
	"github.com/vapeonx/storefront/session"
)

const (
	// CartKey is the session key (and cookie name) holding the cart.
	CartKey = "cart"
	// CartTTL is how long an untouched cart is kept.
	CartTTL = 7 * 24 * time.Hour
)

// CartStore implements the cart operations over a session.Store. It holds no
// state of its own; every call is one read-modify-write of CartKey.
type CartStore struct {
	logger *zap.Logger
}

// NewCartStore creates a cart store. A nil logger discards output.
func NewCartStore(logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{logger: logger}
}

// Get returns the stored cart. A missing or unreadable value yields an empty
// cart; only backend failures are returned as errors.
func (s *CartStore) Get(ctx context.Context, kv session.Store) (*models.Cart, error) {
	raw, ok, err := kv.Get(ctx, CartKey)
	if errors.Is(err, session.ErrCorruptValue) {
		s.logger.Warn("discarding unreadable cart", zap.Error(err))
		return emptyCart(), nil
	}
	if err != nil {
		return nil, newError("cart.get", "", "", err)
	}
	if !ok {
		return emptyCart(), nil
	}

	cart, err := DecodeCart(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable cart", zap.Error(err))
		return emptyCart(), nil
	}
	return &cart, nil
}

// Add puts quantity units of product in the cart. An existing line for the
// product (matched by id, then by name) is incremented.
func (s *CartStore) Add(ctx context.Context, kv session.Store, product *models.CartProduct, quantity int) (*models.Cart, error) {
	const op = "cart.add"
	if product == nil || product.Name == "" || quantity <= 0 {
		return nil, newError(op, "", MsgInvalidProduct, ErrInvalidInput)
	}

	cart, err := s.Get(ctx, kv)
	if err != nil {
		return nil, err
	}

	idx := -1
	if product.ID != "" {
		idx = indexByID(cart.Items, product.ID)
	}
	if idx < 0 {
		idx = indexByName(cart.Items, product.Name)
	}

	if idx >= 0 {
		next := cart.Items[idx].Quantity + quantity
		if next > product.Stock {
			return nil, newError(op, product.Key(), MsgStockExceeded, ErrStockExceeded)
		}
		cart.Items[idx].Quantity = next
	} else {
		if quantity > product.Stock {
			return nil, newError(op, product.Key(), MsgStockExceeded, ErrStockExceeded)
		}
		cart.Items = append(cart.Items, newLine(product, quantity))
	}

	if err := s.save(ctx, kv, op, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Update sets the quantity of the line addressed by itemID.
func (s *CartStore) Update(ctx context.Context, kv session.Store, itemID string, quantity int) (*models.Cart, error) {
	const op = "cart.update"
	if itemID == "" || quantity <= 0 {
		return nil, newError(op, itemID, MsgInvalidItem, ErrInvalidInput)
	}

	cart, err := s.Get(ctx, kv)
	if err != nil {
		return nil, err
	}

	idx := findLine(cart.Items, itemID)
	if idx < 0 {
		return nil, newError(op, itemID, MsgItemNotFound, ErrItemNotFound)
	}
	if quantity > cart.Items[idx].Stock {
		return nil, newError(op, itemID, MsgStockExceeded, ErrStockExceeded)
	}
	cart.Items[idx].Quantity = quantity

	if err := s.save(ctx, kv, op, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove drops every line whose key (id, or name when the id is empty)
// equals itemID. Removing an absent line is not an error.
func (s *CartStore) Remove(ctx context.Context, kv session.Store, itemID string) (*models.Cart, error) {
	const op = "cart.remove"
	if itemID == "" {
		return nil, newError(op, "", MsgInvalidItemID, ErrInvalidInput)
	}

	cart, err := s.Get(ctx, kv)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if !item.Matches(itemID) {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.save(ctx, kv, op, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context, kv session.Store) (*models.Cart, error) {
	cart := emptyCart()
	if err := s.save(ctx, kv, "cart.clear", cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartStore) save(ctx context.Context, kv session.Store, op string, cart *models.Cart) error {
	raw, err := EncodeCart(*cart)
	if err != nil {
		return newError(op, "", "", err)
	}
	if err := kv.Set(ctx, CartKey, raw, CartTTL); err != nil {
		return newError(op, "", "", err)
	}
	s.logger.Debug("cart saved", zap.String("op", op), zap.Int("lines", len(cart.Items)))
	return nil
}

func emptyCart() *models.Cart {
	return &models.Cart{Items: []models.CartItem{}}
}

func newLine(p *models.CartProduct, quantity int) models.CartItem {
	item := models.CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		Quantity: quantity,
		Img:      p.Img,
	}
	if item.ID == "" {
		item.ID = p.Name
	}
	if item.Price < 0 {
		item.Price = 0
	}
	if item.Stock < 0 {
		item.Stock = 0
	}
	if item.Img == "" {
		item.Img = models.PlaceholderImage
	}
	return item
}

// findLine looks a line up by id, then by name.
func findLine(items []models.CartItem, key string) int {
	if idx := indexByID(items, key); idx >= 0 {
		return idx
	}
	return indexByName(items, key)
}

func indexByID(items []models.CartItem, id string) int {
	for i, item := range items {
		if item.ID != "" && item.ID == id {
			return i
		}
	}
	return -1
}

func indexByName(items []models.CartItem, name string) int {
	for i, item := range items {
		if item.Name != "" && item.Name == name {
			return i
		}
	}
	return -1
}
