package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vapeonx/storefront/checkout"
	"github.com/vapeonx/storefront/models"
)

// Checkout converts the session cart into an order and empties the cart.
// Shipping details come from the body, a saved address, or the default
// saved address, in that order.
func (h *Handler) Checkout(c *gin.Context) {
	var input models.CheckoutInput

	// An empty body selects the default address.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	state := kv(c)

	var details models.ShippingDetails
	switch {
	case input.Shipping != nil:
		details = *input.Shipping
	case input.ShippingAddressID != "":
		address, err := h.Addresses.Get(ctx, state, input.ShippingAddressID)
		if err != nil {
			h.orderError(c, err, "Failed to load shipping address")
			return
		}
		details = address.Details
	default:
		address, err := h.Addresses.Default(ctx, state)
		if err != nil {
			h.orderError(c, err, "Failed to load shipping address")
			return
		}
		if address != nil {
			details = address.Details
		}
	}

	if fields := checkout.Validate(details); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": checkout.MsgCheckFields,
			"fields":  fields,
		})
		return
	}
	details = checkout.Normalize(details)

	cart, err := h.Carts.Get(ctx, state)
	if err != nil {
		h.orderError(c, err, "Failed to fetch cart")
		return
	}
	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": checkout.MsgCartEmpty})
		return
	}

	order, err := h.Orders.Create(ctx, state, models.OrderCreateInput{
		Items:       cart.Items,
		Shipping:    details,
		TotalAmount: models.Subtotal(cart.Items),
	})
	if err != nil {
		h.orderError(c, err, "Failed to create order")
		return
	}

	// The order stands even if the cart cannot be emptied.
	if _, err := h.Carts.Clear(ctx, state); err != nil {
		h.Logger.Warn("cart not cleared after checkout",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, models.OrderResponse{
		Success: true,
		Message: checkout.MsgOrderPlaced,
		OrderID: order.ID,
	})
}
