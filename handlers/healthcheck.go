package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CheckConnection reports whether the session backend is reachable.
func (h *Handler) CheckConnection(c *gin.Context) {
	if h.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Health.Ping(ctx); err != nil {
			h.Logger.Error("health check failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Session backend connection failed"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Storefront API is up"})
}
