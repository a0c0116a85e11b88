package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// NoIndexMiddleware keeps form endpoints and their redirects out of search
// indexes. The landing page itself stays indexable.
func NoIndexMiddleware(directives ...string) gin.HandlerFunc {
	value := strings.Join(directives, ", ")
	if strings.TrimSpace(value) == "" {
		value = "noindex, nofollow"
	}

	return func(c *gin.Context) {
		c.Header("X-Robots-Tag", value)
		c.Next()
	}
}
