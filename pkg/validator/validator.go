package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  = bluemonday.StrictPolicy()
	usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.\- ]+$`)
	spaceRegex    = regexp.MustCompile(`\s+`)
)

// Init registers the custom rules on gin's binding engine.
func Init() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("username", validateUsername)
}

// SanitizeString strips every HTML construct from s.
func SanitizeString(s string) string {
	return strictPolicy.Sanitize(s)
}

func NormalizeSpaces(s string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}

func validateUsername(fl validator.FieldLevel) bool {
	username := strings.TrimSpace(fl.Field().String())
	return username != "" && usernameRegex.MatchString(username)
}
