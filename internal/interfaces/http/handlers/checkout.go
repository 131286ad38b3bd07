// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/cart"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/checkout"
	"github.com/tulqinjon2001/zakaz-web-app/internal/interfaces/http/middleware"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	kv              *storage.Store
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(kv *storage.Store, client *backend.Client, cfg *config.Config, log *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkout.NewService(client, kv, log),
		kv:              kv,
		config:          cfg,
	}
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	eng := cart.Load(c.Request.Context(), h.kv, sessionID)
	tgUser := middleware.GetTelegramUserFromContext(c)

	order, err := h.checkoutService.Submit(c.Request.Context(), sessionID, eng, tgUser, form)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrNameRequired),
			errors.Is(err, checkout.ErrPhoneRequired),
			errors.Is(err, checkout.ErrAddressRequired):
			status = http.StatusBadRequest
		}

		c.JSON(status, gin.H{
			"error": errorMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order submitted successfully",
		"data":    order,
	})
}

// errorMessage picks the most specific message available: an upstream
// server message first, then the transport error text, then a generic
// fallback.
func errorMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if err != nil {
		return err.Error()
	}
	return "Something went wrong, please try again"
}
