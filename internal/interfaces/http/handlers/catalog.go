// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/catalog"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/session"
	"github.com/tulqinjon2001/zakaz-web-app/internal/interfaces/http/middleware"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// CatalogHandler handles catalog browsing endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
	sessionService *session.Service
	config         *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(kv *storage.Store, client *backend.Client, cfg *config.Config, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalog.NewService(client, log),
		sessionService: session.NewService(kv, log),
		config:         cfg,
	}
}

// Categories handles GET /catalog/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)
	if h.sessionService.SelectedStore(c.Request.Context(), sessionID) == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No store selected",
		})
		return
	}

	tree, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    tree,
	})
}

// Products handles GET /catalog/products. A non-empty query switches the
// request to upstream text search and ignores categoryId entirely; the two
// filter modes are mutually exclusive.
func (h *CatalogHandler) Products(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	store := h.sessionService.SelectedStore(c.Request.Context(), sessionID)
	if store == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No store selected",
		})
		return
	}

	query := c.Query("query")
	sortBy := c.Query("sort")

	if query != "" {
		products, err := h.catalogService.Search(c.Request.Context(), sessionID, query, store.ID, sortBy)
		if errors.Is(err, catalog.ErrSuperseded) {
			// A newer query took over; this response carries no result
			c.Status(http.StatusNoContent)
			return
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Products retrieved successfully",
			"data":    products,
		})
		return
	}

	products, err := h.catalogService.Products(c.Request.Context(), store.ID, c.Query("categoryId"), sortBy)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}
