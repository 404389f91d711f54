package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FromBindingError translates a gin binding failure (validator.ValidationErrors
// underneath) into FieldErrors keyed by snake_case form field names so the
// templates can place messages next to their inputs. Non-validator errors
// (malformed bodies) collapse into a single form-level message.
func FromBindingError(err error) FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": "invalid request"}
	}

	fe := FieldErrors{}
	for _, v := range verrs {
		fe[snakeCase(v.Field())] = messageFor(v)
	}
	return fe
}

// messageFor renders a user-facing message for a single failed rule.
func messageFor(v validator.FieldError) string {
	field := strings.ReplaceAll(snakeCase(v.Field()), "_", " ")
	switch v.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " is not a valid address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, v.Param())
	case "eqfield":
		return field + " does not match"
	default:
		return field + " is invalid"
	}
}

// snakeCase converts a Go field name (PasswordConfirmation) to its form field
// name (password_confirmation).
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
