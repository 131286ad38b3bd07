// internal/interfaces/http/handlers/session.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/domain/session"
	"github.com/tulqinjon2001/zakaz-web-app/internal/interfaces/http/middleware"
	"github.com/tulqinjon2001/zakaz-web-app/internal/pkg/auth"
	"github.com/tulqinjon2001/zakaz-web-app/internal/pkg/telegram"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// SessionHandler handles session and store selection endpoints
type SessionHandler struct {
	sessionService *session.Service
	client         *backend.Client
	jwtManager     *auth.JWTManager
	config         *config.Config
	log            *logrus.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(kv *storage.Store, client *backend.Client, cfg *config.Config, log *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: session.NewService(kv, log),
		client:         client,
		jwtManager:     auth.NewJWTManager(cfg),
		config:         cfg,
		log:            log,
	}
}

// StartSessionRequest carries the optional Telegram Web App init data
type StartSessionRequest struct {
	InitData string `json:"initData"`
}

// Start handles POST /session. Invalid or absent init data degrades to
// browser-only mode: a session is issued either way, just without an
// authenticated identity.
func (h *SessionHandler) Start(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	var user *telegram.User
	if req.InitData != "" {
		parsed, err := telegram.ParseInitData(req.InitData, h.config.Telegram.BotToken)
		if err != nil {
			h.log.WithError(err).Warn("Init data rejected, continuing in browser mode")
		} else {
			user = parsed
		}
	}

	sessionID := uuid.NewString()
	token, err := h.jwtManager.GenerateSessionToken(sessionID, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session started",
		"data": gin.H{
			"sessionId": sessionID,
			"token":     token,
			"user":      user,
		},
	})
}

// Bootstrap handles GET /session/bootstrap
func (h *SessionHandler) Bootstrap(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)
	state := h.sessionService.Bootstrap(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Session state retrieved",
		"data": gin.H{
			"ready": state.Ready,
			"store": state.Store,
			"user":  middleware.GetTelegramUserFromContext(c),
		},
	})
}

// Stores handles GET /stores
func (h *SessionHandler) Stores(c *gin.Context) {
	stores, err := h.client.GetStores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stores retrieved successfully",
		"data":    stores,
	})
}

// SelectStore handles PUT /session/store
func (h *SessionHandler) SelectStore(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	var info session.StoreInfo
	if err := c.ShouldBindJSON(&info); err != nil || info.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A store id is required",
		})
		return
	}

	h.sessionService.SelectStore(c.Request.Context(), sessionID, info)

	c.JSON(http.StatusOK, gin.H{
		"message": "Store selected",
		"data":    info,
	})
}

// LeaveStore handles DELETE /session/store
func (h *SessionHandler) LeaveStore(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)
	h.sessionService.LeaveStore(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Store selection cleared",
	})
}
