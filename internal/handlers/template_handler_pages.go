package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nutrilife-landing/internal/session"
	"nutrilife-landing/pkg/logger"
	"nutrilife-landing/pkg/navigation"
	"nutrilife-landing/pkg/validator"
)

const maxUsernameLength = 64

// LoginForm is submitted by the login page. Nothing is authenticated.
type LoginForm struct {
	Username string `form:"username" binding:"required,max=64,username"`
	Password string `form:"password" binding:"required,max=256"`
}

// RenderIndex performs one render pass for the caller's session.
func (h *TemplateHandler) RenderIndex(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		logger.Error(nil, "Render pass without session", nil)
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Session unavailable")
		return
	}

	unlock := h.locks.Lock(id)
	defer unlock()

	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	state, err := session.LoadOrNew(ctx, h.sessions, id)
	if err != nil {
		log.WithError(err).Error("Failed to load navigation state")
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to load session")
		return
	}

	if raw, present := c.GetQuery(navigation.QueryKey); present {
		page, err := navigation.Parse(raw)
		if err != nil {
			navigationsTotal.WithLabelValues(navigationSourceQuery, navigationRejected).Inc()
			log.WithField("nav", raw).Warn("Rejected navigation request")
			h.renderBlank(c, state)
			return
		}

		if err := h.sessions.Save(ctx, id, state.Navigate(page)); err != nil {
			log.WithError(err).Error("Failed to save navigation state")
			h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to save session")
			return
		}

		navigationsTotal.WithLabelValues(navigationSourceQuery, navigationAccepted).Inc()
		c.Redirect(http.StatusSeeOther, urlWithoutNav(c.Request.URL))
		return
	}

	state, flash := state.TakeFlash()
	if flash != nil {
		if err := h.sessions.Save(ctx, id, state); err != nil {
			log.WithError(err).Error("Failed to clear flash")
			h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to save session")
			return
		}
	}

	data := h.basePageData(c, state.Page)
	data["Flash"] = flashData(flash)

	content, err := h.dispatch(state.Page, data)
	if err != nil {
		log.WithError(err).WithField("page", state.Page.String()).Error("Failed to render page")
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to render page")
		return
	}
	data["Content"] = content

	h.renderLayout(c, http.StatusOK, data)
}

// renderBlank emits the layout with an empty content region.
func (h *TemplateHandler) renderBlank(c *gin.Context, state session.State) {
	data := h.basePageData(c, state.Page)
	data["Content"] = template.HTML("")
	h.renderLayout(c, http.StatusOK, data)
}

// Navigate handles the in-page navigation buttons.
func (h *TemplateHandler) Navigate(c *gin.Context) {
	page, err := navigation.Parse(c.PostForm("target"))
	if err != nil {
		navigationsTotal.WithLabelValues(navigationSourceControl, navigationRejected).Inc()
		logger.FromContext(c.Request.Context()).WithField("target", c.PostForm("target")).Warn("Rejected navigation target")
		c.String(http.StatusBadRequest, "unknown navigation target")
		return
	}

	if !h.updateState(c, func(state session.State) session.State {
		return state.Navigate(page)
	}) {
		return
	}

	navigationsTotal.WithLabelValues(navigationSourceControl, navigationAccepted).Inc()
	c.Redirect(http.StatusSeeOther, "/")
}

// SubmitLogin validates the login form and greets the user. The session stays
// on the login page.
func (h *TemplateHandler) SubmitLogin(c *gin.Context) {
	var form LoginForm
	var flash session.Flash

	if err := c.ShouldBind(&form); err != nil {
		loginSubmissionsTotal.WithLabelValues("invalid").Inc()
		logger.FromContext(c.Request.Context()).WithError(err).Debug("Invalid login submission")
		flash = session.Flash{Kind: session.FlashError, Message: loginErrorMessage(form)}
	} else {
		loginSubmissionsTotal.WithLabelValues("accepted").Inc()
		name := validator.NormalizeSpaces(validator.SanitizeString(form.Username))
		flash = session.Flash{Kind: session.FlashSuccess, Message: fmt.Sprintf("Welcome, %s!", name)}
	}

	if !h.updateState(c, func(state session.State) session.State {
		return state.Navigate(navigation.Login).WithFlash(flash.Kind, flash.Message)
	}) {
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func loginErrorMessage(form LoginForm) string {
	switch {
	case strings.TrimSpace(form.Username) == "" || form.Password == "":
		return "Please enter both username and password."
	case len([]rune(form.Username)) > maxUsernameLength:
		return fmt.Sprintf("Username must be at most %d characters.", maxUsernameLength)
	default:
		return "Username contains unsupported characters."
	}
}

// updateState applies fn to the caller's state under the session lock. It
// writes the error response itself and reports whether the caller may go on.
func (h *TemplateHandler) updateState(c *gin.Context, fn func(session.State) session.State) bool {
	id, ok := sessionID(c)
	if !ok {
		logger.Error(nil, "Navigation without session", nil)
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Session unavailable")
		return false
	}

	unlock := h.locks.Lock(id)
	defer unlock()

	ctx := c.Request.Context()
	state, err := session.LoadOrNew(ctx, h.sessions, id)
	if err == nil {
		err = h.sessions.Save(ctx, id, fn(state))
	}
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("Failed to update navigation state")
		h.renderError(c, http.StatusInternalServerError, "500 - Server Error", "Failed to save session")
		return false
	}

	return true
}

func renderHome(h *TemplateHandler, data gin.H) (template.HTML, error) {
	promos := h.assets.Promotions()

	urls := make([]template.URL, 0, len(promos))
	sources := make([]string, 0, len(promos))
	for _, promo := range promos {
		urls = append(urls, promo.URL())
		sources = append(sources, string(promo))
	}

	data["Promotions"] = urls
	data["PromotionSources"] = sources

	return h.renderContent("page_home", data)
}

func renderLogin(h *TemplateHandler, data gin.H) (template.HTML, error) {
	return h.renderContent("page_login", data)
}

func renderMenu(h *TemplateHandler, data gin.H) (template.HTML, error) {
	return h.renderContent("page_menu", data)
}

func renderServices(h *TemplateHandler, data gin.H) (template.HTML, error) {
	return h.renderContent("page_services", data)
}

func renderOffers(h *TemplateHandler, data gin.H) (template.HTML, error) {
	return h.renderContent("page_offers", data)
}

func renderContacts(h *TemplateHandler, data gin.H) (template.HTML, error) {
	return h.renderContent("page_contacts", data)
}
