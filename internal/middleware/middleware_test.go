package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"registeruser/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInvocationRouter(t *testing.T, tokens *jwt.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(InvocationAuth(tokens, "proj-1", zap.NewNop()))
	router.POST("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("invocation_subject")})
	})
	return router
}

func doPost(router http.Handler, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestInvocationAuth_ValidToken(t *testing.T) {
	tokens := jwt.New("test-secret-123", time.Hour)
	token, _ := tokens.GenerateToken("proj-1", "exec-7")

	w := doPost(newInvocationRouter(t, tokens), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "exec-7")
}

func TestInvocationAuth_NoToken(t *testing.T) {
	w := doPost(newInvocationRouter(t, jwt.New("secret", time.Hour)), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Authorization header is required"}`, w.Body.String())
}

func TestInvocationAuth_WrongFormat(t *testing.T) {
	w := doPost(newInvocationRouter(t, jwt.New("secret", time.Hour)), "Basic dGVzdA==")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Authorization header must be 'Bearer <token>'", out["error"])
}

func TestInvocationAuth_InvalidToken(t *testing.T) {
	w := doPost(newInvocationRouter(t, jwt.New("secret", time.Hour)), "Bearer invalid-jwt-here")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid invocation token")
}

func TestInvocationAuth_OtherProject(t *testing.T) {
	tokens := jwt.New("secret", time.Hour)
	token, _ := tokens.GenerateToken("proj-2", "exec-1")

	w := doPost(newInvocationRouter(t, tokens), "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"https://app.example.com"}))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorLogger_RecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorLogger(zap.NewNop()))
	router.POST("/", func(c *gin.Context) { panic("boom") })

	w := doPost(router, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal Server Error"}`, w.Body.String())
}
