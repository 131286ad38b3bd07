// internal/interfaces/http/handlers/account.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/session"
	"github.com/tulqinjon2001/zakaz-web-app/internal/interfaces/http/middleware"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// AccountHandler handles the saved account profile endpoints
type AccountHandler struct {
	sessionService *session.Service
	config         *config.Config
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(kv *storage.Store, cfg *config.Config, log *logrus.Logger) *AccountHandler {
	return &AccountHandler{
		sessionService: session.NewService(kv, log),
		config:         cfg,
	}
}

// GetAccount handles GET /account. When no profile has been saved yet the
// Telegram identity is offered as the default, the way the Account page
// prefilled its form.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	info := h.sessionService.Account(c.Request.Context(), sessionID)
	if info == nil {
		if tgUser := middleware.GetTelegramUserFromContext(c); tgUser != nil {
			info = &session.AccountInfo{
				Name:  tgUser.FullName(),
				Phone: tgUser.PhoneNumber,
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account retrieved successfully",
		"data":    info,
	})
}

// SaveAccount handles PUT /account
func (h *AccountHandler) SaveAccount(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	var info session.AccountInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	if err := h.sessionService.SaveAccount(c.Request.Context(), sessionID, info); err != nil {
		message := "Invalid profile data"
		if errors.Is(err, session.ErrNameRequired) {
			message = "Name is required"
		} else if errors.Is(err, session.ErrPhoneRequired) {
			message = "Phone is required"
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account saved successfully",
		"data":    info,
	})
}
