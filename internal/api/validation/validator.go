package validation

import (
	"errors"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxEmailLength is the longest forward-path SMTP accepts.
const MaxEmailLength = 254

var defaultValidator = New()

// New returns a validator with the custom validators registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("contactemail", validateContactEmail)
}

// RegisterWithGin adds the custom validators to gin's binding engine so
// `binding:"..."` tags can use them.
func RegisterWithGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}
}

// validateContactEmail keeps an address safe to place in a header. Syntax is
// left to the built-in email tag.
func validateContactEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	if len(email) > MaxEmailLength || strings.Contains(email, "..") {
		return false
	}
	return strings.IndexFunc(email, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) < 0
}

// ValidEmail reports whether email is a syntactically valid address.
func ValidEmail(email string) bool {
	return defaultValidator.Var(email, "required,email,contactemail") == nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []ValidationError {
	var errs []ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
	}
	return errs
}
