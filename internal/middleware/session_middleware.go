package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutrilife-landing/internal/constants"
	"nutrilife-landing/internal/session"
	"nutrilife-landing/pkg/logger"
)

// SessionMiddleware resolves the session id from the signed cookie, starting a
// new session when the cookie is missing or invalid. The cookie is re-issued
// on every request so its expiry slides with activity.
func SessionMiddleware(tokens *session.Tokens, cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if raw, err := c.Cookie(cookieName); err == nil && raw != "" {
			parsed, parseErr := tokens.Parse(raw)
			if parseErr != nil {
				logger.FromContext(c.Request.Context()).WithError(parseErr).Debug("Discarding session cookie")
			} else {
				id = parsed
			}
		}
		if id == "" {
			id = session.NewID()
		}

		token, err := tokens.Issue(id)
		if err != nil {
			logger.Error(err, "Failed to issue session token", nil)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, token, int(tokens.TTL().Seconds()), "/", "", secure, true)
		c.Set(constants.ContextSessionID, id)
		c.Next()
	}
}

// SessionID returns the id resolved by SessionMiddleware.
func SessionID(c *gin.Context) (string, bool) {
	id := c.GetString(constants.ContextSessionID)
	return id, id != ""
}
