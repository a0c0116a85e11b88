package handlers

import (
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"

	"nutrilife-landing/pkg/navigation"
)

// PageRenderer produces the content region of one page.
type PageRenderer func(h *TemplateHandler, data gin.H) (template.HTML, error)

// RegisterPageRenderer replaces the routine used for page.
func (h *TemplateHandler) RegisterPageRenderer(page navigation.Page, renderer PageRenderer) error {
	if !page.Valid() {
		return fmt.Errorf("cannot register renderer: %w: %s", navigation.ErrUnknownPage, page)
	}
	if renderer == nil {
		return fmt.Errorf("renderer for %s is nil", page)
	}

	if h.pageRenderers == nil {
		h.pageRenderers = make(map[navigation.Page]PageRenderer)
	}

	h.pageRenderers[page] = renderer
	return nil
}

func (h *TemplateHandler) registerDefaultPageRenderers() {
	if h.pageRenderers == nil {
		h.pageRenderers = make(map[navigation.Page]PageRenderer)
	}

	h.pageRenderers[navigation.Home] = renderHome
	h.pageRenderers[navigation.Login] = renderLogin
	h.pageRenderers[navigation.Menu] = renderMenu
	h.pageRenderers[navigation.Services] = renderServices
	h.pageRenderers[navigation.Offers] = renderOffers
	h.pageRenderers[navigation.Contacts] = renderContacts
}

// checkPageRenderers makes sure every page of the closed set has a routine,
// so dispatch can never fall through.
func (h *TemplateHandler) checkPageRenderers() error {
	for _, page := range navigation.All() {
		if _, ok := h.pageRenderers[page]; !ok {
			return fmt.Errorf("no renderer registered for page %s", page)
		}
	}
	return nil
}

// dispatch runs exactly one routine for page.
func (h *TemplateHandler) dispatch(page navigation.Page, data gin.H) (template.HTML, error) {
	renderer, ok := h.pageRenderers[page]
	if !ok {
		return "", fmt.Errorf("no renderer registered for page %s", page)
	}

	renderPassesTotal.WithLabelValues(page.String()).Inc()
	return renderer(h, data)
}
