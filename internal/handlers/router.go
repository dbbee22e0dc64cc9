package handlers

import (
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/jwt"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// InitSentinel loads the flow-control rule guarding checkout.
func InitSentinel(checkoutQPS float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return err
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               ResCheckout,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              checkoutQPS,
			StatIntervalInMs:       1000,
		},
	})
	return err
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Products  *ProductHandler
	Cart      *CartHandler
	Orders    *OrderHandler
	Shops     *ShopHandler
	Wishlist  *WishlistHandler
	Analytics *AnalyticsHandler
}

// NewRouter builds the gin engine with tracing, request logging and all
// API routes mounted.
func NewRouter(h Handlers, tokens *jwt.Manager, logger *zap.Logger, serviceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(RequestLogger(logger))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", AuthMiddleware(tokens), h.Auth.Profile)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Products.List)
		products.GET("/:id", h.Products.Get)

		vendor := products.Group("", AuthMiddleware(tokens), RequireRole(models.RoleVendor, models.RoleAdmin))
		{
			vendor.POST("", h.Products.Create)
			vendor.PUT("/:id", h.Products.Update)
			vendor.DELETE("/:id", h.Products.Delete)
		}

		products.POST("/:id/rating", AuthMiddleware(tokens), h.Products.Rate)
	}

	shops := api.Group("/shops")
	{
		shops.GET("/:id", h.Shops.Get)
		shops.PUT("/me", AuthMiddleware(tokens), RequireRole(models.RoleVendor), h.Shops.UpdateMine)
	}

	cart := api.Group("/cart", AuthMiddleware(tokens))
	{
		cart.GET("", h.Cart.Items)
		cart.POST("", h.Cart.SetItem)
		cart.DELETE("/:productId", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
	}

	wishlist := api.Group("/wishlist", AuthMiddleware(tokens))
	{
		wishlist.GET("", h.Wishlist.List)
		wishlist.POST("/:productId", h.Wishlist.Add)
		wishlist.DELETE("/:productId", h.Wishlist.Remove)
	}

	orders := api.Group("/orders", AuthMiddleware(tokens))
	{
		orders.POST("", h.Orders.Create)
		orders.GET("/myorders", h.Orders.MyOrders)
		orders.GET("/vendor", RequireRole(models.RoleVendor), h.Orders.VendorOrders)
		orders.GET("/:id", h.Orders.Get)
		orders.PUT("/:id/status", RequireRole(models.RoleVendor, models.RoleAdmin), h.Orders.UpdateStatus)
	}

	analytics := api.Group("/analytics", AuthMiddleware(tokens))
	{
		analytics.GET("/vendor", RequireRole(models.RoleVendor), h.Analytics.VendorStats)
		analytics.GET("/admin", RequireRole(models.RoleAdmin), h.Analytics.AdminStats)
	}

	return r
}
