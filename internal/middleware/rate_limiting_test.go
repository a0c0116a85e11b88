package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"nutrilife-landing/internal/config"
)

func TestRateLimitManagerReusesVisitorLimiter(t *testing.T) {
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	first := manager.GetVisitor("10.0.0.1", 5, 60, 0)
	second := manager.GetVisitor("10.0.0.1", 5, 60, 0)
	other := manager.GetVisitor("10.0.0.2", 5, 60, 0)

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Nil(t, manager.GetVisitor("10.0.0.3", 0, 60, 0))
}

func TestRateLimitManagerCleanupDropsIdleVisitors(t *testing.T) {
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	manager.GetVisitor("10.0.0.1", 5, 60, 0)
	manager.GetLoginLimiter("10.0.0.1", 5, 60)

	manager.cleanup(time.Now().Add(5 * time.Minute))
	manager.visitorsMu.RLock()
	assert.Empty(t, manager.visitors)
	manager.visitorsMu.RUnlock()
	manager.loginLimitersMu.RLock()
	assert.Len(t, manager.loginLimiters, 1)
	manager.loginLimitersMu.RUnlock()

	manager.cleanup(time.Now().Add(11 * time.Minute))
	manager.loginLimitersMu.RLock()
	assert.Empty(t, manager.loginLimiters)
	manager.loginLimitersMu.RUnlock()
}

func TestRateLimitManagerShutdownStopsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	manager := NewRateLimitManager(context.Background())
	require.NoError(t, manager.Shutdown())
}

func TestLoginRateLimitMiddlewareRejectsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	cfg := &config.Config{LoginRateLimitRequests: 2, LoginRateLimitWindow: 3600}
	router := gin.New()
	router.POST("/login", LoginRateLimitMiddleware(cfg, manager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestShouldBypassRateLimit(t *testing.T) {
	assert.True(t, shouldBypassRateLimit(httptest.NewRequest(http.MethodGet, "/static/bg.jpg", nil)))
	assert.True(t, shouldBypassRateLimit(httptest.NewRequest(http.MethodGet, "/health", nil)))
	assert.False(t, shouldBypassRateLimit(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.False(t, shouldBypassRateLimit(httptest.NewRequest(http.MethodPost, "/static/x", nil)))
}
