// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/interfaces/http/handlers"
	"github.com/tulqinjon2001/zakaz-web-app/internal/interfaces/http/middleware"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// SetupRoutes wires all storefront routes
func SetupRoutes(rg *gin.RouterGroup, kv *storage.Store, client *backend.Client, cfg *config.Config, log *logrus.Logger) {
	sessionHandler := handlers.NewSessionHandler(kv, client, cfg, log)
	catalogHandler := handlers.NewCatalogHandler(kv, client, cfg, log)
	cartHandler := handlers.NewCartHandler(kv, client, cfg, log)
	checkoutHandler := handlers.NewCheckoutHandler(kv, client, cfg, log)
	orderHandler := handlers.NewOrderHandler(kv, client, cfg, log)
	accountHandler := handlers.NewAccountHandler(kv, cfg, log)

	// Session start is the only endpoint reachable without a session token
	rg.POST("/session", sessionHandler.Start)

	protected := rg.Group("")
	protected.Use(middleware.SessionMiddleware(cfg))
	{
		session := protected.Group("/session")
		{
			session.GET("/bootstrap", sessionHandler.Bootstrap)
			session.PUT("/store", sessionHandler.SelectStore)
			session.DELETE("/store", sessionHandler.LeaveStore)
		}

		protected.GET("/stores", sessionHandler.Stores)

		catalog := protected.Group("/catalog")
		{
			catalog.GET("/categories", catalogHandler.Categories)
			catalog.GET("/products", catalogHandler.Products)
		}

		cart := protected.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:productId", cartHandler.UpdateItem)
			cart.DELETE("/items/:productId", cartHandler.RemoveItem)
			cart.DELETE("", cartHandler.ClearCart)
		}

		protected.POST("/checkout", checkoutHandler.Submit)

		orders := protected.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		account := protected.Group("/account")
		{
			account.GET("", accountHandler.GetAccount)
			account.PUT("", accountHandler.SaveAccount)
		}
	}
}
