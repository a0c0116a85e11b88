package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContentSecurityPolicyAllowsInlineAssets(t *testing.T) {
	policy := buildContentSecurityPolicy(nil, nil)
	directives := parseContentSecurityPolicy(policy)

	required := map[string][]string{
		"img-src":    {"'self'", "data:"},
		"style-src":  {"'unsafe-inline'"},
		"script-src": {"'self'", "'unsafe-inline'"},
		"object-src": {"'none'"},
	}

	for directive, sources := range required {
		values, ok := directives[directive]
		require.True(t, ok, "missing %s in policy: %s", directive, policy)
		for _, source := range sources {
			assert.Contains(t, values, source, "%s in policy: %s", directive, policy)
		}
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecurityHeadersMiddleware(nil, nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", recorder.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, recorder.Header().Get("Content-Security-Policy"))
	assert.Empty(t, recorder.Header().Get("Strict-Transport-Security"), "HSTS is only sent over TLS")
}

func TestSecurityHeadersMiddlewareExtraSources(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecurityHeadersMiddleware([]string{"https://cdn.example.com"}, []string{"https://js.example.com"}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	directives := parseContentSecurityPolicy(recorder.Header().Get("Content-Security-Policy"))
	assert.Contains(t, directives["img-src"], "https://cdn.example.com")
	assert.Contains(t, directives["script-src"], "https://js.example.com")
	assert.NotContains(t, directives["img-src"], "https://js.example.com")
}

func parseContentSecurityPolicy(policy string) map[string]map[string]struct{} {
	result := make(map[string]map[string]struct{})

	for _, directive := range strings.Split(policy, ";") {
		parts := strings.Fields(directive)
		if len(parts) == 0 {
			continue
		}

		values := make(map[string]struct{}, len(parts)-1)
		for _, value := range parts[1:] {
			values[value] = struct{}{}
		}
		result[parts[0]] = values
	}

	return result
}
