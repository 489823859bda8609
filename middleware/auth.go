package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vapeonx/storefront/identity"
	"github.com/vapeonx/storefront/models"
)

// TokenCookie holds the identity token of a signed-in browser.
const TokenCookie = "session_token"

const (
	userKey  = "user"
	tokenKey = "token"
)

// AuthMiddleware resolves the caller's identity from a Bearer token or the
// session_token cookie. Anonymous and invalid tokens pass through without a
// user; use RequireUser to reject them.
func AuthMiddleware(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if cookie, err := c.Cookie(TokenCookie); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.Next()
			return
		}

		user, err := provider.CurrentUser(c.Request.Context(), token)
		if err == nil && user != nil {
			c.Set(userKey, user)
			c.Set(tokenKey, token)
		}
		c.Next()
	}
}

// RequireUser rejects requests that carry no valid identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// Token returns the token the current user was resolved from.
func Token(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) string {
	splitToken := strings.Split(header, "Bearer ")
	if len(splitToken) != 2 {
		return ""
	}
	return strings.TrimSpace(splitToken[1])
}
