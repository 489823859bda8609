package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vapeonx/storefront/checkout"
	"github.com/vapeonx/storefront/models"
)

// GetShippingAddresses retrieves all saved shipping addresses
func (h *Handler) GetShippingAddresses(c *gin.Context) {
	addresses, err := h.Addresses.List(c.Request.Context(), kv(c))
	if err != nil {
		h.cartError(c, err, "failed to fetch addresses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// GetShippingAddress retrieves a specific shipping address
func (h *Handler) GetShippingAddress(c *gin.Context) {
	address, err := h.Addresses.Get(c.Request.Context(), kv(c), c.Param("id"))
	if err != nil {
		h.cartError(c, err, "failed to fetch address")
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}

// CreateShippingAddress saves a new shipping address
func (h *Handler) CreateShippingAddress(c *gin.Context) {
	input, ok := bindAddress(c)
	if !ok {
		return
	}

	address, err := h.Addresses.Create(c.Request.Context(), kv(c), input)
	if err != nil {
		h.cartError(c, err, "failed to create address")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "address created successfully",
		"address": address,
	})
}

// UpdateShippingAddress updates an existing shipping address
func (h *Handler) UpdateShippingAddress(c *gin.Context) {
	input, ok := bindAddress(c)
	if !ok {
		return
	}

	address, err := h.Addresses.Update(c.Request.Context(), kv(c), c.Param("id"), input)
	if err != nil {
		h.cartError(c, err, "failed to update address")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "address updated successfully",
		"address": address,
	})
}

// DeleteShippingAddress removes a shipping address
func (h *Handler) DeleteShippingAddress(c *gin.Context) {
	if err := h.Addresses.Delete(c.Request.Context(), kv(c), c.Param("id")); err != nil {
		h.cartError(c, err, "failed to delete address")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "address deleted successfully"})
}

// bindAddress parses and validates an address body, writing the 400 itself.
func bindAddress(c *gin.Context) (models.ShippingAddressInput, bool) {
	var input models.ShippingAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return input, false
	}
	if fields := checkout.Validate(input.Details); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shipping details", "fields": fields})
		return input, false
	}
	input.Details = checkout.Normalize(input.Details)
	return input, true
}
