// Package handlers implements the storefront's HTTP API on gin.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vapeonx/storefront/catalog"
	"github.com/vapeonx/storefront/identity"
	"github.com/vapeonx/storefront/middleware"
	"github.com/vapeonx/storefront/session"
	"github.com/vapeonx/storefront/store"
)

// Handler holds the dependencies shared by every route.
type Handler struct {
	Carts     *store.CartStore
	Orders    *store.OrderStore
	Addresses *store.AddressStore
	Catalog   *catalog.Catalog
	Identity  identity.Provider
	// Health is pinged by the health check; nil for the cookie backend.
	Health session.Pinger
	Logger *zap.Logger

	SecureCookies bool
	TokenTTL      time.Duration
}

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case store.IsNotFound(err):
		return http.StatusNotFound
	case store.IsBadRequest(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// failure picks the status and client message for err, logging server
// errors. fallback is shown for 500s.
func (h *Handler) failure(c *gin.Context, err error, fallback string) (int, string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error(fallback,
			zap.String("path", c.FullPath()),
			zap.Error(err))
		_ = c.Error(err)
		return status, fallback
	}
	return status, store.Message(err, fallback)
}

// cartError writes the {error} envelope used by cart, catalog and auth routes.
func (h *Handler) cartError(c *gin.Context, err error, fallback string) {
	status, msg := h.failure(c, err, fallback)
	c.JSON(status, gin.H{"error": msg})
}

// orderError writes the {success,message} envelope used by order routes.
func (h *Handler) orderError(c *gin.Context, err error, fallback string) {
	status, msg := h.failure(c, err, fallback)
	c.JSON(status, gin.H{"success": false, "message": msg})
}

// kv returns the session store bound to the request.
func kv(c *gin.Context) session.Store {
	return middleware.SessionStore(c)
}
