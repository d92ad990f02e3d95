// Package forms holds the field error type shared by every HTML form.
package forms

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldErrors maps a form field name to its error message. Empty means valid.
type FieldErrors map[string]string

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get is used by templates; missing fields yield ""
func (e FieldErrors) Get(field string) string {
	return e[field]
}

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// Fields lists field names in stable order
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FromValidation converts ozzo-validation errors into FieldErrors.
// Any non-validation error (a failing rule callback) is returned as is.
func FromValidation(err error) (FieldErrors, error) {
	fe := FieldErrors{}
	if err == nil {
		return fe, nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	for field, ferr := range verrs {
		var internal validation.InternalError
		if errors.As(ferr, &internal) {
			return nil, internal.InternalError()
		}
		fe[field] = ferr.Error()
	}
	return fe, nil
}
