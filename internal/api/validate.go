package api

import (
	"net/mail"
	"strings"
)

// FieldError names one field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type fieldCheck struct {
	field string
	ok    func(string) bool
	msg   string
}

// notEmpty requires a non-blank value.
func notEmpty(field string) fieldCheck {
	return fieldCheck{
		field: field,
		ok:    func(v string) bool { return strings.TrimSpace(v) != "" },
		msg:   "is required",
	}
}

// isEmail requires a parseable email address.
func isEmail(field string) fieldCheck {
	return fieldCheck{
		field: field,
		ok: func(v string) bool {
			addr, err := mail.ParseAddress(strings.TrimSpace(v))
			return err == nil && addr.Address == strings.TrimSpace(v)
		},
		msg: "must be a valid email",
	}
}

// validateFields runs the declarative checks against a field/value map
// and collects every violation.
func validateFields(values map[string]string, checks ...fieldCheck) []FieldError {
	var errs []FieldError
	for _, c := range checks {
		if !c.ok(values[c.field]) {
			errs = append(errs, FieldError{Field: c.field, Message: c.msg})
		}
	}
	return errs
}
