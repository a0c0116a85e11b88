package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nutrilife-landing/internal/constants"
)

var stateChangingMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// CSRFMiddleware issues a double-submit token cookie and verifies it on
// state-changing requests. The token is exposed to templates through the gin
// context.
func CSRFMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieToken, err := c.Cookie(constants.CSRFTokenCookieName)
		cookieToken = strings.TrimSpace(cookieToken)
		hadCookie := err == nil && cookieToken != ""

		if !hadCookie {
			cookieToken = generateCSRFToken()
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(constants.CSRFTokenCookieName, cookieToken, 0, "/", "", secure, true)
		}
		c.Set(constants.ContextCSRFToken, cookieToken)

		if _, shouldCheck := stateChangingMethods[c.Request.Method]; !shouldCheck {
			c.Next()
			return
		}

		if !hadCookie {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		submitted := strings.TrimSpace(c.PostForm(constants.CSRFTokenFormField))
		if submitted == "" {
			submitted = strings.TrimSpace(c.GetHeader(constants.CSRFTokenHeader))
		}
		if submitted == "" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) != 1 {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}

// CSRFToken returns the token issued for the current request.
func CSRFToken(c *gin.Context) string {
	return c.GetString(constants.ContextCSRFToken)
}

func generateCSRFToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("csrf: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
