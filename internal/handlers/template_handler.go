package handlers

import (
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"

	"nutrilife-landing/internal/assets"
	"nutrilife-landing/internal/config"
	"nutrilife-landing/internal/constants"
	"nutrilife-landing/internal/session"
	"nutrilife-landing/pkg/navigation"
)

// TemplateHandler renders the landing site. Every GET of the index is one
// render pass over the caller's navigation state.
type TemplateHandler struct {
	config        *config.Config
	templates     *template.Template
	sessions      session.Store
	locks         *session.Locker
	assets        *assets.Loader
	pageRenderers map[navigation.Page]PageRenderer
}

func NewTemplateHandler(cfg *config.Config, templates *template.Template, sessions session.Store, loader *assets.Loader) (*TemplateHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if loader == nil {
		return nil, fmt.Errorf("asset loader is required")
	}

	handler := &TemplateHandler{
		config:    cfg,
		templates: templates,
		sessions:  sessions,
		locks:     session.NewLocker(),
		assets:    loader,
	}

	handler.registerDefaultPageRenderers()
	if err := handler.checkPageRenderers(); err != nil {
		return nil, err
	}

	return handler, nil
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.GetString(constants.ContextSessionID)
	return id, id != ""
}
