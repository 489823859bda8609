package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vapeonx/storefront/middleware"
	"github.com/vapeonx/storefront/session"
)

// RouterOptions controls the middleware stack.
type RouterOptions struct {
	// Backend keeps session state server side; nil keeps it in cookies.
	Backend        session.Store
	RequireUser    bool
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
}

// NewRouter wires every route of the storefront.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(h.Logger))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware())
	}
	r.Use(middleware.Session(opts.Backend, h.SecureCookies))
	if h.Identity != nil {
		r.Use(middleware.AuthMiddleware(h.Identity))
	}

	r.GET("/health-check", h.CheckConnection)

	// Public routes
	r.GET("/shops", h.GetShops)
	r.GET("/shops/:slug", h.GetShop)
	r.GET("/products", h.GetAllProducts)
	r.GET("/products/:id", h.GetProduct)

	if h.Identity != nil {
		r.POST("/auth/signup", h.SignUp)
		r.POST("/auth/signin", h.SignIn)
		r.POST("/auth/signout", h.SignOut)
		r.GET("/auth/me", h.Me)
	}

	// Session state routes
	state := r.Group("/")
	if opts.RequireUser {
		state.Use(middleware.RequireUser())
	}
	{
		state.GET("/cart", h.GetCart)
		state.POST("/cart/add", h.AddToCart)
		state.POST("/cart/update", h.UpdateCartItem)
		state.POST("/cart/remove", h.RemoveFromCart)
		state.POST("/cart/clear", h.ClearCart)

		state.GET("/orders", h.GetOrders)
		state.GET("/orders/:id", h.GetOrderDetails)
		state.POST("/orders/create", h.CreateOrder)
		state.POST("/orders/cancel", h.CancelOrder)
		state.POST("/orders/delete", h.DeleteOrder)

		state.POST("/checkout", h.Checkout)

		state.GET("/shipping-addresses", h.GetShippingAddresses)
		state.GET("/shipping-addresses/:id", h.GetShippingAddress)
		state.POST("/shipping-addresses", h.CreateShippingAddress)
		state.PUT("/shipping-addresses/:id", h.UpdateShippingAddress)
		state.DELETE("/shipping-addresses/:id", h.DeleteShippingAddress)
	}

	return r
}
