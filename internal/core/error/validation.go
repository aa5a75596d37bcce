package errx

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// FieldErrors carries per-field validation messages for a blocked submission.
// Field names are the submitting form's field identifiers, not struct names.
type FieldErrors map[string]string

// Error implements the error interface with a stable, field-sorted rendering.
func (f FieldErrors) Error() string {
	if len(f) == 0 {
		return ValidationErrorMessage
	}
	fields := make([]string, 0, len(f))
	for name := range f {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, name := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", name, f[name]))
	}
	return ValidationErrorMessage + " (" + strings.Join(parts, "; ") + ")"
}

// WrapValidation wraps field errors into the unified Error type so callers can
// branch on the class without losing the per-field detail.
func WrapValidation(fields FieldErrors) *Error {
	return New(fields, http.StatusUnprocessableEntity, ValidationErrorMessage)
}
