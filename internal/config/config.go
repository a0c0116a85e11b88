package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultSessionSecret = "change-this-session-secret-in-production"

type Config struct {
	// Server
	Port        string
	Environment string

	// Site
	SiteName string

	// Assets
	AssetsDir       string
	BackgroundImage string
	LogoImage       string
	PromoImages     []string
	Stylesheets     []string

	// Sessions
	SessionSecret     string
	SessionCookieName string
	SessionTTL        time.Duration

	// Redis
	EnableRedis bool
	RedisURL    string

	// CORS
	CORSOrigins []string

	// Content security policy
	CSPImageSources  []string
	CSPScriptSources []string

	// Rate Limiting
	RateLimitRequests      int
	RateLimitWindow        int
	RateLimitBurst         int
	LoginRateLimitRequests int
	LoginRateLimitWindow   int

	// Features
	EnableMetrics bool

	// Model patching
	ModelPath string
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Site
		SiteName: getEnv("SITE_NAME", "NutriLife"),

		// Assets
		AssetsDir:       getEnv("ASSETS_DIR", "./assets"),
		BackgroundImage: getEnv("BACKGROUND_IMAGE", "bg.jpg"),
		LogoImage:       getEnv("LOGO_IMAGE", "Nlogo.png"),
		PromoImages:     getEnvAsList("PROMO_IMAGES", []string{"salad1.png", "salad2.png", "salad3.png"}),
		Stylesheets:     getEnvAsList("STYLESHEETS", nil),

		// Sessions
		SessionSecret:     getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "nutrilife_session"),
		SessionTTL:        time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 120)) * time.Minute,

		// Redis
		EnableRedis: getEnvAsBool("ENABLE_REDIS", false),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// CORS
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:8080"}),

		// Content security policy
		CSPImageSources:  getEnvAsList("CSP_IMG_SOURCES", nil),
		CSPScriptSources: getEnvAsList("CSP_SCRIPT_SOURCES", nil),

		// Rate Limiting
		RateLimitRequests:      getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:        getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:         getEnvAsInt("RATE_LIMIT_BURST", 0),
		LoginRateLimitRequests: getEnvAsInt("LOGIN_RATE_LIMIT_REQUESTS", 10),
		LoginRateLimitWindow:   getEnvAsInt("LOGIN_RATE_LIMIT_WINDOW", 60),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Model patching
		ModelPath: getEnv("MODEL_PATH", "public/nutrilife_web_model/model.json"),
	}
}

// Validate reports settings that would make the server unsafe to run.
func (c *Config) Validate() error {
	if c.IsProduction() && c.SessionSecret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
