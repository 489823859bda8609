package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vapeonx/storefront/models"
	"github.com/vapeonx/storefront/store"
)

// GetCart retrieves the visitor's current cart
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.Carts.Get(c.Request.Context(), kv(c))
	if err != nil {
		h.cartError(c, err, "Failed to fetch cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddToCart adds a product to the cart
func (h *Handler) AddToCart(c *gin.Context) {
	var input models.CartAddInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.MsgInvalidProduct})
		return
	}

	cart, err := h.Carts.Add(c.Request.Context(), kv(c), input.Product, input.Quantity)
	if err != nil {
		h.cartError(c, err, "Failed to add to cart")
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Success: true, Cart: cart})
}

// UpdateCartItem sets the quantity of a cart line
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var input models.CartUpdateInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.MsgInvalidItem})
		return
	}

	cart, err := h.Carts.Update(c.Request.Context(), kv(c), input.ItemID, input.Quantity)
	if err != nil {
		h.cartError(c, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Success: true, Cart: cart})
}

// RemoveFromCart removes a line from the cart
func (h *Handler) RemoveFromCart(c *gin.Context) {
	var input models.CartRemoveInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": store.MsgInvalidItemID})
		return
	}

	cart, err := h.Carts.Remove(c.Request.Context(), kv(c), input.ItemID)
	if err != nil {
		h.cartError(c, err, "Failed to remove item from cart")
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Success: true, Cart: cart})
}

// ClearCart removes all items from the cart
func (h *Handler) ClearCart(c *gin.Context) {
	cart, err := h.Carts.Clear(c.Request.Context(), kv(c))
	if err != nil {
		h.cartError(c, err, "Failed to clear cart")
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Success: true, Cart: cart})
}
