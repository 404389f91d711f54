// Package validation provides the field-level validation error type shared by
// the feature usecases and rendered into HTML forms by the transport layer.
package validation

import (
	"errors"
	"sort"
	"strings"
)

// FieldErrors maps a form field name to a user-facing validation message.
// It implements the error interface so usecases can return it directly.
type FieldErrors map[string]string

// Error joins all field messages in field-name order.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(e))
	for _, f := range fields {
		msgs = append(msgs, f+": "+e[f])
	}
	return strings.Join(msgs, "; ")
}

// AsFieldErrors extracts a FieldErrors from an error chain.
// It returns nil and false if the error carries no field-level detail.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
