package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vapeonx/storefront/models"
	"github.com/vapeonx/storefront/store"
)

// GetOrders lists the orders placed from this session
func (h *Handler) GetOrders(c *gin.Context) {
	orders, err := h.Orders.List(c.Request.Context(), kv(c))
	if err != nil {
		h.orderError(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, models.OrdersResponse{Orders: orders})
}

// GetOrderDetails retrieves a single order
func (h *Handler) GetOrderDetails(c *gin.Context) {
	order, err := h.Orders.Get(c.Request.Context(), kv(c), c.Param("id"))
	if err != nil {
		h.orderError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CreateOrder records a new order
func (h *Handler) CreateOrder(c *gin.Context) {
	var input models.OrderCreateInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": store.MsgNoItems})
		return
	}

	order, err := h.Orders.Create(c.Request.Context(), kv(c), input)
	if err != nil {
		h.orderError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusOK, models.OrderResponse{
		Success: true,
		Message: "Order created successfully",
		OrderID: order.ID,
	})
}

// CancelOrder cancels a pending order
func (h *Handler) CancelOrder(c *gin.Context) {
	var input models.OrderIDInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": store.MsgOrderIDRequired})
		return
	}

	if _, err := h.Orders.Cancel(c.Request.Context(), kv(c), input.OrderID); err != nil {
		h.orderError(c, err, "Failed to cancel order")
		return
	}
	c.JSON(http.StatusOK, models.OrderResponse{Success: true, Message: "Order cancelled successfully"})
}

// DeleteOrder removes an order from the history
func (h *Handler) DeleteOrder(c *gin.Context) {
	var input models.OrderIDInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": store.MsgOrderIDRequired})
		return
	}

	if err := h.Orders.Delete(c.Request.Context(), kv(c), input.OrderID); err != nil {
		h.orderError(c, err, "Failed to delete order")
		return
	}
	c.JSON(http.StatusOK, models.OrderResponse{Success: true, Message: "Order deleted successfully"})
}
