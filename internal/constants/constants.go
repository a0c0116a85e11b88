package constants

const (
	CSRFTokenCookieName = "nutrilife_csrf"
	CSRFTokenFormField  = "csrf_token"
	CSRFTokenHeader     = "X-CSRF-Token"
)

// Keys stored on the gin context by middleware.
const (
	ContextRequestID = "request_id"
	ContextSessionID = "session_id"
	ContextCSRFToken = "csrf_token"
)
