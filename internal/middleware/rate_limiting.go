package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nutrilife-landing/internal/config"
)

// RateLimitMiddleware limits request rate per IP
func RateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil || shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		limiter := manager.GetVisitor(
			c.ClientIP(),
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			cfg.RateLimitBurst,
		)

		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.String(http.StatusTooManyRequests, "too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRateLimitMiddleware limits login form submissions per IP
func LoginRateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	requestsPerWindow := cfg.LoginRateLimitRequests
	if requestsPerWindow <= 0 {
		requestsPerWindow = 10
	}
	windowSeconds := cfg.LoginRateLimitWindow
	if windowSeconds <= 0 {
		windowSeconds = 60
	}

	return func(c *gin.Context) {
		if manager == nil {
			c.Next()
			return
		}

		limiter := manager.GetLoginLimiter(c.ClientIP(), requestsPerWindow, windowSeconds)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.String(http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	path := r.URL.Path
	if path == "" {
		return false
	}

	if strings.HasPrefix(path, "/static/") {
		return true
	}

	switch path {
	case "/favicon.ico", "/health", "/metrics":
		return true
	}

	return false
}
