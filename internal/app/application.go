package app

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nutrilife-landing/internal/assets"
	"nutrilife-landing/internal/config"
	"nutrilife-landing/internal/handlers"
	"nutrilife-landing/internal/middleware"
	"nutrilife-landing/internal/session"
	"nutrilife-landing/pkg/cache"
	"nutrilife-landing/pkg/logger"
	"nutrilife-landing/pkg/utils"
	"nutrilife-landing/templates"
)

type Options struct {
	// Templates overrides the embedded views.
	Templates fs.FS
}

type Application struct {
	cfg     *config.Config
	options Options

	ctx    context.Context
	cancel context.CancelFunc

	cache       *cache.Cache
	sessions    session.Store
	tokens      *session.Tokens
	rateLimiter *middleware.RateLimitManager

	templates       *template.Template
	templateHandler *handlers.TemplateHandler
	router          *gin.Engine
	server          *http.Server
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if opts.Templates == nil {
		opts.Templates = templates.FS
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &Application{
		cfg:     cfg,
		options: opts,
		ctx:     ctx,
		cancel:  cancel,
	}

	if err := app.init(); err != nil {
		app.release()
		return nil, err
	}

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) init() error {
	if err := a.initSessions(); err != nil {
		return err
	}

	if err := a.initHandlers(); err != nil {
		return err
	}

	a.rateLimiter = middleware.NewRateLimitManager(a.ctx)

	return a.initRouter()
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"sessions":    a.sessionBackend(),
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	a.release()
	return nil
}

// release stops background workers and closes the session backend.
func (a *Application) release() {
	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			logger.Error(err, "Failed to close session store", nil)
		}
	}

	if a.cancel != nil {
		a.cancel()
	}
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) sessionBackend() string {
	if a.cache.Enabled() {
		return "redis"
	}
	return "memory"
}

func (a *Application) initSessions() error {
	tokens, err := session.NewTokens(a.cfg.SessionSecret, a.cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize session tokens: %w", err)
	}
	a.tokens = tokens

	if a.cfg.EnableRedis {
		logger.Info("Connecting to Redis", map[string]interface{}{"addr": a.cfg.RedisURL})
	}

	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableRedis)
	if err != nil {
		return fmt.Errorf("failed to initialize session cache: %w", err)
	}
	a.cache = c

	if c.Enabled() {
		a.sessions = session.NewRedisStore(c, a.cfg.SessionTTL)
	} else {
		a.sessions = session.NewMemoryStore(a.ctx, a.cfg.SessionTTL)
	}

	return nil
}

func (a *Application) initHandlers() error {
	tmpl, err := utils.LoadTemplates(a.options.Templates)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	a.templates = tmpl
	logger.Info("Templates loaded successfully", nil)

	loader := assets.NewLoader(assets.Options{
		Dir:         a.cfg.AssetsDir,
		Background:  a.cfg.BackgroundImage,
		Logo:        a.cfg.LogoImage,
		Promotions:  a.cfg.PromoImages,
		Stylesheets: a.cfg.Stylesheets,
	})

	templateHandler, err := handlers.NewTemplateHandler(a.cfg, tmpl, a.sessions, loader)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	a.templateHandler = templateHandler
	return nil
}

func (a *Application) initRouter() error {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	secure := a.cfg.IsProduction()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.SecurityHeadersMiddleware(a.cfg.CSPImageSources, a.cfg.CSPScriptSources))
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimiter))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", handlers.Health)

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.Static("/static", a.cfg.AssetsDir)

	site := router.Group("")
	site.Use(middleware.SessionMiddleware(a.tokens, a.cfg.SessionCookieName, secure))
	site.Use(middleware.CSRFMiddleware(secure))
	{
		site.GET("/", a.templateHandler.RenderIndex)
		site.POST("/navigate", middleware.NoIndexMiddleware(), a.templateHandler.Navigate)
		site.POST("/login",
			middleware.NoIndexMiddleware(),
			middleware.LoginRateLimitMiddleware(a.cfg, a.rateLimiter),
			a.templateHandler.SubmitLogin,
		)
	}

	router.NoRoute(a.templateHandler.NotFound)

	a.router = router
	return nil
}
