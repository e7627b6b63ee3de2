// internal/form/validate.go
//
// Server-side validation of submitted form values.
//
// Context
//   Validation runs against the YAML definition registered for the
//   form, never against ad-hoc rules in handlers.  The validator also
//   enforces the anti-automation checks shared by every form: the CSRF
//   token and a minimum render-to-submit interval.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"
)

// minSubmitInterval is the shortest believable human fill time.
// Submissions faster than this are treated as automation.
const minSubmitInterval = 2 * time.Second

// FieldError describes one validation failure, keyed by field name.
type FieldError struct {
	Field   string
	Message string
}

// Result carries the outcome of a Validate call: the cleaned values and
// any per-field errors.  Valid() is true when Errors is empty.
type Result struct {
	Values map[string]string
	Errors []FieldError
}

// Valid reports whether the submission passed every check.
func (r *Result) Valid() bool { return len(r.Errors) == 0 }

// ErrorFor returns the first error message for field, or "".
func (r *Result) ErrorFor(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Validate checks vals against the registered definition for formID.
// CSRF and timing checks run first; a failure there yields a single
// form-level error under the field name "_form" and skips field checks.
func Validate(formID string, vals url.Values) (*Result, error) {
	fd, ok := GetFormDef(formID)
	if !ok {
		return nil, fmt.Errorf("unknown form %q", formID)
	}

	res := &Result{Values: make(map[string]string, len(fd.Fields))}

	renderTS, _ := strconv.ParseInt(vals.Get("_ts"), 10, 64)
	if !VerifyToken(formID, vals.Get("_csrf"), renderTS) {
		res.Errors = append(res.Errors, FieldError{Field: "_form", Message: "Form expired, please try again"})
		return res, nil
	}
	if time.Since(time.Unix(renderTS, 0)) < minSubmitInterval {
		res.Errors = append(res.Errors, FieldError{Field: "_form", Message: "Form submitted too quickly"})
		return res, nil
	}

	for i := range fd.Fields {
		f := &fd.Fields[i]
		v := vals.Get(f.Name)
		res.Values[f.Name] = v
		if msg := checkField(f, v, res.Values); msg != "" {
			res.Errors = append(res.Errors, FieldError{Field: f.Name, Message: msg})
		}
	}
	return res, nil
}

// checkField applies the declared rules to a single value.  Values is
// the map built so far, used for cross-field `match` checks (fields are
// validated in declaration order, so a match target is always present).
func checkField(f *FieldDef, v string, values map[string]string) string {
	if v == "" {
		if f.Required {
			return orMsg(f, f.Label+" is required")
		}
		return ""
	}

	n := utf8.RuneCountInString(v)
	if f.MinLength > 0 && n < f.MinLength {
		return orMsg(f, fmt.Sprintf("%s must be at least %d characters", f.Label, f.MinLength))
	}
	if f.MaxLength > 0 && n > f.MaxLength {
		return orMsg(f, fmt.Sprintf("%s must be at most %d characters", f.Label, f.MaxLength))
	}

	if f.Type == "email" {
		if _, err := mail.ParseAddress(v); err != nil {
			return orMsg(f, "Enter a valid email address")
		}
	}

	if f.Match != "" && v != values[f.Match] {
		return orMsg(f, f.Label+" does not match")
	}
	return ""
}

// orMsg prefers the field's custom error message when one is declared.
func orMsg(f *FieldDef, fallback string) string {
	if f.ErrorMsg != "" {
		return f.ErrorMsg
	}
	return fallback
}
