package router

import (
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/token"

	"github.com/gin-contrib/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Catalog  *handlers.CatalogHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Orders   *handlers.OrderHandler
	Webhooks *handlers.WebhookHandler
}

func Router(h Handlers, tokens *token.HSProvider, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api/v1")

	// публичные маршруты
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.POST("/auth/verify-email/request", h.Auth.RequestEmailVerification)
	api.POST("/auth/verify-email/confirm", h.Auth.ConfirmEmailVerification)
	api.POST("/auth/password-reset/request", h.Auth.RequestPasswordReset)
	api.POST("/auth/password-reset/confirm", h.Auth.ConfirmPasswordReset)

	api.GET("/categories", h.Catalog.ListCategories)
	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/products/:id", h.Catalog.GetProduct)

	// вебхук аутентифицируется подписью Stripe, не токеном
	api.POST("/webhooks/stripe", h.Webhooks.HandleStripe)

	// маршруты пользователя
	authed := api.Group("")
	authed.Use(middleware.AuthRequired(tokens, log))
	{
		authed.GET("/auth/me", h.Auth.Me)

		authed.GET("/cart", h.Cart.Get)
		authed.PUT("/cart/items", h.Cart.SetItem)
		authed.DELETE("/cart/items/:productId", h.Cart.RemoveItem)
		authed.POST("/cart/clear", h.Cart.Clear)

		authed.POST("/checkout/payment-intent", h.Checkout.CreateIntent)
		authed.POST("/orders", h.Checkout.CreateOrder)
		authed.GET("/orders", h.Orders.ListMine)
		authed.GET("/orders/by-intent/:intentId", h.Orders.GetByIntent)
		authed.GET("/orders/:id", h.Orders.Get)
	}

	// маршруты администратора
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(tokens, log), middleware.AdminRequired())
	{
		admin.POST("/categories", h.Catalog.CreateCategory)
		admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)
		admin.POST("/products", h.Catalog.CreateProduct)
		admin.PATCH("/products/:id", h.Catalog.UpdateProduct)
		admin.DELETE("/products/:id", h.Catalog.DeleteProduct)
		admin.GET("/orders", h.Orders.AdminList)
		admin.PATCH("/orders/:id", h.Orders.AdminUpdateStatus)
	}

	return r
}
