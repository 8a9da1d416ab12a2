package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns for DTO-level binding validation
var (
	dtoNameRegex     = regexp.MustCompile(`^[\p{L} .'-]+$`)
	dtoPhoneRegex    = regexp.MustCompile(`^9[0-9]{8}$`)
	dtoNonDigitRegex = regexp.MustCompile(`[^0-9]`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidNameTag)
	_ = v.RegisterValidation("valid_phone", ValidPhoneTag)
}

// ValidNameTag validates that a string contains only letters, spaces and
// common name punctuation.
func ValidNameTag(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return dtoNameRegex.MatchString(val)
}

// ValidPhoneTag validates the 9-digit mobile format after stripping
// separators and an optional 51 country code, so gateway-formatted numbers
// ("+51 987 654 321") bind cleanly.
func ValidPhoneTag(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	digits := dtoNonDigitRegex.ReplaceAllString(val, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "51") {
		digits = digits[2:]
	}
	return dtoPhoneRegex.MatchString(digits)
}
