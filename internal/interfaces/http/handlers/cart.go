// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/cart"
	"github.com/tulqinjon2001/zakaz-web-app/internal/interfaces/http/middleware"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	kv     *storage.Store
	client *backend.Client
	config *config.Config
	log    *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(kv *storage.Store, client *backend.Client, cfg *config.Config, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		kv:     kv,
		client: client,
		config: cfg,
		log:    log,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)
	eng := cart.Load(c.Request.Context(), h.kv, sessionID)

	h.respondCart(c, "Cart retrieved successfully", eng)
}

// AddItem handles POST /cart/items. Adding without a selected store, or a
// product without inventory, leaves the cart unchanged.
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	eng := cart.Load(c.Request.Context(), h.kv, sessionID)
	if eng.StoreID() == "" {
		h.respondCart(c, "No store selected, cart unchanged", eng)
		return
	}

	product, err := h.findProduct(c, eng.StoreID(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found in this store",
		})
		return
	}

	eng.Add(c.Request.Context(), product, req.Quantity)
	h.respondCart(c, "Item added to cart successfully", eng)
}

// UpdateItem handles PUT /cart/items/:productId. A quantity of zero or less
// removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	eng := cart.Load(c.Request.Context(), h.kv, sessionID)
	eng.UpdateQuantity(c.Request.Context(), c.Param("productId"), req.Quantity)

	h.respondCart(c, "Cart item updated successfully", eng)
}

// RemoveItem handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	eng := cart.Load(c.Request.Context(), h.kv, sessionID)
	eng.Remove(c.Request.Context(), c.Param("productId"))

	h.respondCart(c, "Item removed from cart successfully", eng)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	eng := cart.Load(c.Request.Context(), h.kv, sessionID)
	eng.Clear(c.Request.Context())

	h.respondCart(c, "Cart cleared successfully", eng)
}

func (h *CartHandler) respondCart(c *gin.Context, message string, eng *cart.Engine) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"items":  eng.Lines(),
			"totals": eng.Totals(),
		},
	})
}

// findProduct looks the product up in the store's product list, the same
// lookup the web client did against its loaded catalog
func (h *CartHandler) findProduct(c *gin.Context, storeID, productID string) (*backend.Product, error) {
	products, err := h.client.GetProductsByStore(c.Request.Context(), storeID)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, nil
}
