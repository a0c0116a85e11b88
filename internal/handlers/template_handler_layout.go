package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"nutrilife-landing/internal/assets"
	"nutrilife-landing/internal/constants"
	"nutrilife-landing/internal/session"
	"nutrilife-landing/pkg/logger"
	"nutrilife-landing/pkg/navigation"
)

const (
	layoutTemplate = "base.html"
	errorTemplate  = "error.html"
)

func (h *TemplateHandler) basePageData(c *gin.Context, page navigation.Page) gin.H {
	data := gin.H{
		"Title":      fmt.Sprintf("%s - %s", page.Title(), h.config.SiteName),
		"SiteName":   h.config.SiteName,
		"NavItems":   navigation.NavbarItems(),
		"CSRFToken":  c.GetString(constants.ContextCSRFToken),
		"ActivePage": page,
	}

	h.applyLayoutAssets(data)

	return data
}

// applyLayoutAssets reads the background, logo and stylesheets for one pass.
func (h *TemplateHandler) applyLayoutAssets(data gin.H) {
	background, err := h.assets.Background()
	switch {
	case err == nil:
		data["BackgroundCSS"] = backgroundCSS(background)
	case errors.Is(err, assets.ErrAssetNotFound):
		data["BackgroundError"] = "Background not found: " + h.assets.BackgroundPath()
	default:
		logger.Error(err, "Failed to read background", map[string]interface{}{"path": h.assets.BackgroundPath()})
		data["BackgroundError"] = "Background not found: " + h.assets.BackgroundPath()
	}

	if logo, ok := h.assets.Logo(); ok {
		data["Logo"] = logo.URL()
	}

	sheets := h.assets.Stylesheets()
	styles := make([]template.CSS, 0, len(sheets))
	for _, sheet := range sheets {
		styles = append(styles, template.CSS(sheet))
	}
	data["Stylesheets"] = styles
}

func backgroundCSS(uri assets.DataURI) template.CSS {
	return template.CSS(fmt.Sprintf(`.app {
      background-image: url("%s");
      background-size: cover;
      background-position: center;
      background-attachment: fixed;
    }`, uri))
}

func (h *TemplateHandler) renderContent(name string, data gin.H) (template.HTML, error) {
	tmpl := h.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("content template %s not found", name)
	}

	buf, err := h.executeTemplate(tmpl, data)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	return template.HTML(buf), nil
}

func (h *TemplateHandler) renderLayout(c *gin.Context, status int, data gin.H) {
	tmpl := h.templates.Lookup(layoutTemplate)
	if tmpl == nil {
		logger.Error(nil, "Layout template not found", map[string]interface{}{"template": layoutTemplate})
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Template not found")
		return
	}

	output, err := h.executeTemplate(tmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render layout", nil)
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render page")
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, title, msg string) {
	data := gin.H{
		"Title":    title,
		"Message":  msg,
		"SiteName": h.config.SiteName,
	}

	errorTmpl := h.templates.Lookup(errorTemplate)
	if errorTmpl == nil {
		logger.Error(nil, "Error template missing", nil)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	output, err := h.executeTemplate(errorTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render error template", nil)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

func (h *TemplateHandler) executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// flashData converts the pending flash for the layout banner.
func flashData(flash *session.Flash) gin.H {
	if flash == nil {
		return nil
	}
	return gin.H{"Kind": string(flash.Kind), "Message": flash.Message}
}

// urlWithoutNav returns the request target with the nav parameter removed and
// every other parameter kept.
func urlWithoutNav(u *url.URL) string {
	query := u.Query()
	query.Del(navigation.QueryKey)

	target := u.Path
	if target == "" {
		target = "/"
	}
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}

func (h *TemplateHandler) NotFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "404 - Page not found", "The requested page could not be found")
}
