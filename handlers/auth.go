package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vapeonx/storefront/identity"
	"github.com/vapeonx/storefront/middleware"
	"github.com/vapeonx/storefront/models"
)

// SignUp creates a new account and signs it in
func (h *Handler) SignUp(c *gin.Context) {
	var input models.Credentials

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Identity.SignUp(c.Request.Context(), input)
	if err != nil {
		h.authError(c, err, "failed to create account")
		return
	}

	h.setTokenCookie(c, res.Token)
	c.JSON(http.StatusCreated, res)
}

// SignIn authenticates a user and returns a token
func (h *Handler) SignIn(c *gin.Context) {
	var input models.Credentials

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Identity.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.authError(c, err, "failed to sign in")
		return
	}

	h.setTokenCookie(c, res.Token)
	c.JSON(http.StatusOK, res)
}

// SignOut revokes the current token and clears the cookie
func (h *Handler) SignOut(c *gin.Context) {
	token := middleware.Token(c)
	if token == "" {
		token, _ = c.Cookie(middleware.TokenCookie)
	}
	if token != "" {
		if err := h.Identity.SignOut(c.Request.Context(), token); err != nil {
			h.authError(c, err, "failed to sign out")
			return
		}
	}

	h.clearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the signed-in user
func (h *Handler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) authError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, identity.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrInvalidEmail), errors.Is(err, identity.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, identity.ErrUnavailable):
		h.Logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "identity provider unavailable"})
	default:
		h.Logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func (h *Handler) setTokenCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearTokenCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
