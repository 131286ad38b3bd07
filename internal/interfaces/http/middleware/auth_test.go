// internal/interfaces/http/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/pkg/auth"
	"github.com/tulqinjon2001/zakaz-web-app/internal/pkg/telegram"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "zakaz-storefront"
	cfg.Session.Secret = "test-secret"
	cfg.Session.TokenExpiry = time.Hour
	return cfg
}

func newProtectedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(cfg))
	router.GET("/whoami", func(c *gin.Context) {
		sessionID, _ := GetSessionIDFromContext(c)
		response := gin.H{"sessionId": sessionID}
		if user := GetTelegramUserFromContext(c); user != nil {
			response["telegramId"] = user.TelegramID()
		}
		c.JSON(http.StatusOK, response)
	})
	return router
}

func TestSessionMiddlewareRejectsMissingHeader(t *testing.T) {
	router := newProtectedRouter(newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddlewareRejectsMalformedHeader(t *testing.T) {
	router := newProtectedRouter(newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddlewareRejectsInvalidToken(t *testing.T) {
	router := newProtectedRouter(newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddlewareAcceptsValidToken(t *testing.T) {
	cfg := newTestConfig()
	router := newProtectedRouter(cfg)

	token, err := auth.NewJWTManager(cfg).GenerateSessionToken("sess-1", nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sessionId":"sess-1"`)
}

func TestSessionMiddlewarePropagatesTelegramUser(t *testing.T) {
	cfg := newTestConfig()
	router := newProtectedRouter(cfg)

	user := &telegram.User{ID: 12345, FirstName: "Ali"}
	token, err := auth.NewJWTManager(cfg).GenerateSessionToken("sess-1", user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"telegramId":"12345"`)
}
