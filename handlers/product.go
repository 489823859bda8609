package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vapeonx/storefront/catalog"
)

// GetShops lists every shop
func (h *Handler) GetShops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shops": h.Catalog.Shops()})
}

// GetShop retrieves a shop with its products
func (h *Handler) GetShop(c *gin.Context) {
	shop, err := h.Catalog.Shop(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

// GetAllProducts lists products, optionally of one shop (?shop=slug)
func (h *Handler) GetAllProducts(c *gin.Context) {
	products, err := h.Catalog.Products(c.Query("shop"))
	if errors.Is(err, catalog.ErrShopNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct retrieves a specific product
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Catalog.Product(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}
