package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrilife-landing/internal/config"
	"nutrilife-landing/internal/constants"
	"nutrilife-landing/pkg/validator"
)

type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, handler http.Handler) *browser {
	return &browser{t: t, handler: handler, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	for _, cookie := range rec.Result().Cookies() {
		b.cookies[cookie.Name] = cookie
	}
	return rec
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) csrfToken() string {
	b.t.Helper()
	cookie, ok := b.cookies[constants.CSRFTokenCookieName]
	require.True(b.t, ok, "csrf cookie not issued")
	return cookie.Value
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Init()

	cfg := &config.Config{
		Port:                   "0",
		Environment:            "development",
		SiteName:               "NutriLife",
		AssetsDir:              t.TempDir(),
		BackgroundImage:        "bg.jpg",
		LogoImage:              "Nlogo.png",
		PromoImages:            []string{"salad1.png"},
		SessionSecret:          "test-secret",
		SessionCookieName:      "nutrilife_session",
		SessionTTL:             time.Hour,
		CORSOrigins:            []string{"http://localhost:8080"},
		RateLimitRequests:      1000,
		RateLimitWindow:        60,
		LoginRateLimitRequests: 10,
		LoginRateLimitWindow:   60,
		EnableMetrics:          true,
	}

	application, err := New(cfg, Options{})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = application.Shutdown(ctx)
	})

	return application
}

func TestApplicationNavigationFlow(t *testing.T) {
	application := newTestApplication(t)
	b := newBrowser(t, application.Router())

	rec := b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Get Started")
	assert.Contains(t, b.cookies, "nutrilife_session")

	rec = b.post("/navigate", url.Values{
		"target":                     {"menu"},
		constants.CSRFTokenFormField: {b.csrfToken()},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "noindex, nofollow", rec.Header().Get("X-Robots-Tag"))

	rec = b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "🍽 Menu")

	rec = b.get("/?nav=contacts")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = b.get("/?nav=bogus")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<main class="content" id="content"></main>`)

	rec = b.get("/")
	assert.Contains(t, rec.Body.String(), "<title>Contacts - NutriLife</title>")
}

func TestApplicationSessionsAreIndependent(t *testing.T) {
	application := newTestApplication(t)
	first := newBrowser(t, application.Router())
	second := newBrowser(t, application.Router())

	first.get("/?nav=offers")
	second.get("/")

	assert.Contains(t, first.get("/").Body.String(), "<title>Offers - NutriLife</title>")
	assert.Contains(t, second.get("/").Body.String(), "<title>Home - NutriLife</title>")
}

func TestApplicationRejectsPostWithoutCSRFToken(t *testing.T) {
	application := newTestApplication(t)
	b := newBrowser(t, application.Router())
	b.get("/")

	rec := b.post("/navigate", url.Values{"target": {"menu"}})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApplicationLoginFlash(t *testing.T) {
	application := newTestApplication(t)
	b := newBrowser(t, application.Router())
	b.get("/")

	rec := b.post("/login", url.Values{
		"username":                   {"Ana"},
		"password":                   {"hunter2"},
		constants.CSRFTokenFormField: {b.csrfToken()},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body := b.get("/").Body.String()
	assert.Contains(t, body, "Welcome, Ana!")
	assert.NotContains(t, body, "hunter2")
}

func TestApplicationHealthAndNotFound(t *testing.T) {
	application := newTestApplication(t)
	b := newBrowser(t, application.Router())

	rec := b.get("/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"service":"nutrilife-landing"`)

	rec = b.get("/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404 - Page not found")
}

func TestApplicationSetsSecurityHeaders(t *testing.T) {
	application := newTestApplication(t)

	rec := newBrowser(t, application.Router()).get("/")

	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}
