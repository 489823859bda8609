package client

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/vapeonx/storefront/models"
)

// CartClient is the cart facade. The mirror is stale from construction until
// the first successful FetchCart, and after every mutation until the re-fetch
// that follows it succeeds.
type CartClient struct {
	api

	mu    sync.RWMutex
	items []models.CartItem
	stale bool
}

// NewCartClient creates a cart facade for the API at baseURL. A nil
// httpClient gets NewHTTPClient.
func NewCartClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *CartClient {
	return &CartClient{
		api:   newAPI(baseURL, httpClient, logger),
		items: []models.CartItem{},
		stale: true,
	}
}

// FetchCart replaces the mirror with the server cart. On failure the mirror
// is kept and stays stale.
func (c *CartClient) FetchCart(ctx context.Context) bool {
	var cart models.Cart
	if err := c.call(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		c.logger.Warn("fetch cart failed", zap.Error(err))
		c.markStale()
		return false
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	c.mu.Lock()
	c.items = cart.Items
	c.stale = false
	c.mu.Unlock()
	return true
}

// AddToCart adds quantity units of product.
func (c *CartClient) AddToCart(ctx context.Context, product models.CartProduct, quantity int) bool {
	if product.Name == "" || quantity < 1 {
		c.logger.Warn("add to cart rejected locally",
			zap.String("product", product.Name),
			zap.Int("quantity", quantity))
		return false
	}
	if product.ID == "" {
		product.ID = product.Name
	}
	if product.Img == "" {
		product.Img = models.PlaceholderImage
	}
	if c.quantityOf(product.ID)+quantity > product.Stock {
		c.logger.Warn("add to cart exceeds stock",
			zap.String("item_id", product.ID),
			zap.Int("stock", product.Stock))
		return false
	}

	input := models.CartAddInput{Product: &product, Quantity: quantity}
	return c.mutate(ctx, "/cart/add", input)
}

// UpdateQuantity sets the quantity of the line addressed by itemID. A
// quantity of zero or less removes the line.
func (c *CartClient) UpdateQuantity(ctx context.Context, itemID string, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(ctx, itemID)
	}
	if itemID == "" {
		return false
	}
	if line, ok := c.line(itemID); ok && quantity > line.Stock {
		c.logger.Warn("update exceeds stock",
			zap.String("item_id", itemID),
			zap.Int("stock", line.Stock))
		return false
	}
	return c.mutate(ctx, "/cart/update", models.CartUpdateInput{ItemID: itemID, Quantity: quantity})
}

// RemoveItem drops the line addressed by itemID.
func (c *CartClient) RemoveItem(ctx context.Context, itemID string) bool {
	if itemID == "" {
		return false
	}
	return c.mutate(ctx, "/cart/remove", models.CartRemoveInput{ItemID: itemID})
}

// ClearCart empties the cart.
func (c *CartClient) ClearCart(ctx context.Context) bool {
	return c.mutate(ctx, "/cart/clear", nil)
}

// CalculateSubtotal sums price × quantity over the mirror. Lines with a
// non-finite or negative price count as zero.
func (c *CartClient) CalculateSubtotal() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.Subtotal(c.items)
}

// Count is the total quantity in the mirror.
func (c *CartClient) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.ItemCount(c.items)
}

// Items returns a copy of the mirror.
func (c *CartClient) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.CartItem{}, c.items...)
}

// Stale reports whether the mirror may differ from the server.
func (c *CartClient) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// mutate posts body to path, then re-fetches. The result reflects the
// mutation only; a failed re-fetch leaves the mirror stale.
func (c *CartClient) mutate(ctx context.Context, path string, body any) bool {
	if err := c.call(ctx, http.MethodPost, path, body, nil); err != nil {
		c.logger.Warn("cart mutation failed", zap.String("path", path), zap.Error(err))
		return false
	}
	c.markStale()
	c.FetchCart(ctx)
	return true
}

func (c *CartClient) markStale() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

func (c *CartClient) line(itemID string) (models.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.Matches(itemID) {
			return item, true
		}
	}
	return models.CartItem{}, false
}

func (c *CartClient) quantityOf(itemID string) int {
	line, _ := c.line(itemID)
	return line.Quantity
}
