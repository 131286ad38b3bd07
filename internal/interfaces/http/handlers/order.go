// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/checkout"
	"github.com/tulqinjon2001/zakaz-web-app/internal/interfaces/http/middleware"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// OrderHandler handles order history endpoints
type OrderHandler struct {
	checkoutService *checkout.Service
	client          *backend.Client
	config          *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(kv *storage.Store, client *backend.Client, cfg *config.Config, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkout.NewService(client, kv, log),
		client:          client,
		config:          cfg,
	}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)
	tgUser := middleware.GetTelegramUserFromContext(c)

	orders, err := h.checkoutService.Orders(c.Request.Context(), sessionID, tgUser)
	if err != nil {
		if errors.Is(err, checkout.ErrNoIdentity) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "No user identity available",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": errorMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.client.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": errorMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    order,
	})
}
