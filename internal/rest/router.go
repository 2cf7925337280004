package rest

import (
	"net/http"
	"time"

	"storefront-be/internal/nav"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Version is stamped at build time with -ldflags "-X storefront-be/internal/rest.Version=...".
var Version = "dev"

// NewRouter wires every endpoint. Authentication itself happens in the
// net/http middleware chain in front of the engine; the gin guards here only
// check what it left in the request context.
func NewRouter(h *Handler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		respondError(c, ErrRouteNotFound)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": Version})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", RequireAuth(), h.Me)

	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/nav", func(c *gin.Context) {
		respondData(c, http.StatusOK, nav.Storefront)
	})

	shopper := api.Group("", RequireAuth())
	shopper.GET("/orders", h.MyOrders)
	shopper.GET("/orders/:id", h.GetOrder)
	shopper.GET("/cart", h.GetCart)
	shopper.POST("/cart/items", h.AddCartItem)
	shopper.DELETE("/cart/items/:id", h.RemoveCartItem)
	shopper.DELETE("/cart", h.ClearCart)
	shopper.POST("/wishlist/:productId/toggle", h.ToggleWishlist)

	admin := api.Group("/admin", RequireAdmin())
	admin.GET("/products", h.AdminListProducts)
	admin.POST("/products", h.CreateProduct)
	admin.GET("/products/:id", h.GetProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.GET("/users", h.AdminListUsers)
	admin.GET("/orders", h.AdminListOrders)
	admin.GET("/orders/:id", h.GetOrder)
	admin.GET("/settings", h.AdminSettings)
	admin.GET("/stats", h.AdminStats)
	admin.POST("/uploads", h.Upload)
	admin.DELETE("/uploads", h.DeleteUpload)
	admin.POST("/test-email", h.TestEmail)

	return r
}
